// Package extract pulls structured artifacts — payment handles, phone
// numbers, bank accounts, URLs — out of raw scam messages. Extraction is
// best-effort and heuristic; every extractor is a total function over
// arbitrary text.
package extract

import (
	"regexp"
	"strings"
)

// Intelligence is the artifact bundle pulled from a single message.
// Each list is deduplicated; order carries no meaning.
type Intelligence struct {
	UPIIDs       []string `json:"upi_ids"`
	BankAccounts []string `json:"bank_accounts"`
	PhoneNumbers []string `json:"phone_numbers"`
	URLs         []string `json:"urls"`
}

// Empty reports whether no artifacts were extracted.
func (i Intelligence) Empty() bool {
	return len(i.UPIIDs) == 0 && len(i.BankAccounts) == 0 &&
		len(i.PhoneNumbers) == 0 && len(i.URLs) == 0
}

// None returns an all-empty bundle. The lists are non-nil so the bundle
// serialises as empty arrays rather than nulls.
func None() Intelligence {
	return Intelligence{
		UPIIDs:       []string{},
		BankAccounts: []string{},
		PhoneNumbers: []string{},
		URLs:         []string{},
	}
}

var (
	upiRe = regexp.MustCompile(`[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}`)
	urlRe = regexp.MustCompile(`https?://(?:[-\w.]|(?:%[\da-fA-F]{2}))+(?:/[-\w./?%&=]*)?`)

	// High-confidence Indian mobile: optional +91/091/0091 prefix, then ten
	// digits starting 6-9. Digit adjacency is checked separately since RE2
	// has no lookaround.
	mobileRe = regexp.MustCompile(`(?:(?:\+|0{0,2})91[-\s]?)?[6-9][0-9]{9}`)

	// Generic international candidate with flexible separators. Accepted only
	// when the stripped digit count lands in the phone range (10-11); that
	// bound keeps formatted candidates from swallowing bank-account-length
	// runs.
	genericPhoneRe = regexp.MustCompile(`\+?[0-9]{1,4}[-.\s]?\(?[0-9]{2,3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)

	bankRe     = regexp.MustCompile(`\b[0-9]{9,18}\b`)
	nonDigitRe = regexp.MustCompile(`\D`)
)

// bankContextKeywords gate 9-11 digit runs: without nearby context those are
// indistinguishable from phone numbers or numeric noise.
var bankContextKeywords = []string{"account", "a/c", "acc", "bank", "acct", "number", "no.", "ifsc"}

// All runs every extractor over the message and returns the combined bundle.
func All(message string) Intelligence {
	return Intelligence{
		UPIIDs:       UPIIDs(message),
		BankAccounts: BankAccounts(message),
		PhoneNumbers: PhoneNumbers(message),
		URLs:         URLs(message),
	}
}

// UPIIDs extracts payment handles of the form localpart@bank.
func UPIIDs(text string) []string {
	return dedupe(upiRe.FindAllString(text, -1))
}

// URLs extracts http/https links.
func URLs(text string) []string {
	return dedupe(urlRe.FindAllString(text, -1))
}

// PhoneNumbers extracts phone numbers in two tiers: high-confidence local
// mobiles, then generic international formats filtered by digit count.
func PhoneNumbers(text string) []string {
	matches := findDigitBounded(mobileRe, text)

	for _, c := range findDigitBounded(genericPhoneRe, text) {
		n := len(digitsOf(c))
		if n >= 10 && n <= 11 {
			matches = append(matches, c)
		}
	}

	return dedupe(matches)
}

// BankAccounts extracts candidate account numbers: maximal 9-18 digit runs,
// minus anything already claimed by phone extraction. Runs of 12+ digits are
// accepted outright; 9-11 digit runs need a context keyword within the 50
// characters before the run.
func BankAccounts(text string) []string {
	phoneDigits := make(map[string]struct{})
	for _, p := range PhoneNumbers(text) {
		phoneDigits[digitsOf(p)] = struct{}{}
	}

	var results []string
	for _, loc := range bankRe.FindAllStringIndex(text, -1) {
		candidate := text[loc[0]:loc[1]]
		if _, ok := phoneDigits[candidate]; ok {
			continue
		}
		if len(candidate) >= 12 {
			results = append(results, candidate)
			continue
		}
		if hasBankContext(text, loc[0]) {
			results = append(results, candidate)
		}
	}
	return dedupe(results)
}

func hasBankContext(text string, start int) bool {
	from := start - 50
	if from < 0 {
		from = 0
	}
	pre := strings.ToLower(text[from:start])
	for _, kw := range bankContextKeywords {
		if strings.Contains(pre, kw) {
			return true
		}
	}
	return false
}

// findDigitBounded returns matches of re that are not adjacent to a digit on
// either side, emulating the (?<!\d)...(?!\d) assertions RE2 cannot express.
// A rejected candidate only shifts the search by one rune so that a valid
// match starting inside the rejected span is still found.
func findDigitBounded(re *regexp.Regexp, text string) []string {
	var matches []string
	offset := 0
	for offset < len(text) {
		loc := re.FindStringIndex(text[offset:])
		if loc == nil {
			break
		}
		start, end := offset+loc[0], offset+loc[1]
		if !digitAt(text, start-1) && !digitAt(text, end) {
			matches = append(matches, text[start:end])
			offset = end
		} else {
			offset = start + 1
		}
	}
	return matches
}

func digitAt(text string, i int) bool {
	return i >= 0 && i < len(text) && text[i] >= '0' && text[i] <= '9'
}

func digitsOf(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := []string{}
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
