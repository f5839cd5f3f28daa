// Package detect classifies inbound messages against known scam patterns.
// Classification is pure keyword scoring over fixed weight tables — no ML,
// no external calls.
package detect

import (
	"math"
	"strings"
)

// ScamType is the closed set of scam categories loki recognises.
type ScamType string

const (
	Phishing      ScamType = "phishing"
	OTPFraud      ScamType = "otp_fraud"
	UPIRefund     ScamType = "upi_refund"
	LoanScam      ScamType = "loan_scam"
	JobScam       ScamType = "job_scam"
	Impersonation ScamType = "impersonation"
	Unknown       ScamType = "unknown"
)

// Signal records a single keyword hit. Signals explain a classification;
// they do not feed back into scoring.
type Signal struct {
	Type    ScamType `json:"type"`
	Keyword string   `json:"keyword"`
}

// String renders the signal in the "type:keyword" wire form.
func (s Signal) String() string {
	return string(s.Type) + ":" + s.Keyword
}

// Result is the outcome of classifying one message.
type Result struct {
	IsScam     bool     `json:"is_scam"`
	ScamType   ScamType `json:"scam_type"`
	Confidence float64  `json:"confidence"`
	Signals    []Signal `json:"signals"`
}

// ruleSet binds a scam type to its keyword list and per-keyword weight.
type ruleSet struct {
	scamType ScamType
	weight   float64
	keywords []string
}

// Evaluation order matters for tie-breaking: the running winner is only
// replaced by a strictly greater score, so earlier types win ties.
var rules = []ruleSet{
	{Phishing, 1.0, []string{"verify", "kyc", "login", "update", "expire", "suspend"}},
	{OTPFraud, 1.5, []string{"otp", "code", "verification", "share code", "4 digit"}},
	{UPIRefund, 1.2, []string{"refund", "cashback", "upi", "collect request", "scan", "qr code", "bhim", "gpay", "phonepe"}},
	{LoanScam, 1.2, []string{"instant loan", "no cibil", "processing fee", "low interest", "approve", "disburse"}},
	{JobScam, 1.2, []string{"job offer", "part time", "work from home", "registration fee", "telegram", "hr manager", "hiring"}},
	{Impersonation, 1.5, []string{"police", "cbi", "customs", "bank officer", "manager", "arrest", "parcel"}},
}

// linkBonus is added to the phishing score when the message carries a link.
// Link presence alone stays below the scam threshold.
const linkBonus = 0.5

// Classify scores the message against every rule set and derives the winning
// scam type and a confidence in [0,1], rounded to 2 decimals. Sub-threshold
// results report Unknown regardless of which type scored highest.
func Classify(message string) Result {
	lower := strings.ToLower(message)

	scores := make(map[ScamType]float64, len(rules))
	var signals []Signal

	if strings.Contains(lower, "http") || strings.Contains(lower, "www.") || strings.Contains(lower, ".com") {
		scores[Phishing] += linkBonus
	}

	for _, rs := range rules {
		for _, kw := range rs.keywords {
			if strings.Contains(lower, kw) {
				scores[rs.scamType] += rs.weight
				signals = append(signals, Signal{Type: rs.scamType, Keyword: kw})
			}
		}
	}

	winner := Unknown
	var maxScore float64
	for _, rs := range rules {
		if scores[rs.scamType] > maxScore {
			maxScore = scores[rs.scamType]
			winner = rs.scamType
		}
	}

	isScam, confidence := confidenceFor(maxScore)
	if !isScam {
		winner = Unknown
	}

	return Result{
		IsScam:     isScam,
		ScamType:   winner,
		Confidence: round2(confidence),
		Signals:    signals,
	}
}

// confidenceFor maps a raw score onto the confidence bands:
// below 0.5 nothing fired worth reporting, 0.5–1.0 is a weak match that is
// deliberately suppressed from triggering engagement, 1.0–2.5 maps linearly
// to 0.4–0.7, 2.5–4.5 to 0.7–0.95, and anything above caps at 0.99.
func confidenceFor(score float64) (bool, float64) {
	switch {
	case score < 0.5:
		return false, 0.0
	case score < 1.0:
		return false, 0.25
	case score < 2.5:
		return true, 0.4 + (score-1.0)*0.2
	case score < 4.5:
		return true, 0.7 + (score-2.5)*0.125
	default:
		return true, 0.99
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
