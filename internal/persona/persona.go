// Package persona selects the fictitious character and canned reply used to
// string a scammer along. Selection is deterministic: the same session and
// turn always produce the same reply, across restarts and deployments.
package persona

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/MikeSquared-Agency/loki/internal/detect"
	"github.com/MikeSquared-Agency/loki/internal/session"
)

// Persona identifies the character voice used in replies.
type Persona string

const (
	NaiveStudent       Persona = "naive_student"
	ConfusedUser       Persona = "confused_user"
	ElderlyUser        Persona = "elderly_user"
	DesperateJobSeeker Persona = "desperate_job_seeker"
	SmallBusinessOwner Persona = "small_business_owner"
	ScaredCitizen      Persona = "scared_citizen"

	// None is the sentinel reported when loki is not engaging.
	None Persona = "none"
)

var personaByType = map[detect.ScamType]Persona{
	detect.Phishing:      NaiveStudent,
	detect.OTPFraud:      ConfusedUser,
	detect.UPIRefund:     ElderlyUser,
	detect.JobScam:       DesperateJobSeeker,
	detect.LoanScam:      SmallBusinessOwner,
	detect.Impersonation: ScaredCitizen,
	detect.Unknown:       ElderlyUser,
}

// ForType returns the persona assigned to a scam type. Unrecognised types
// get the default persona.
func ForType(scamType detect.ScamType) Persona {
	if p, ok := personaByType[scamType]; ok {
		return p
	}
	return ElderlyUser
}

// Select picks the persona and reply for one turn. The reply is chosen from
// the (scam type, stage) catalog cell by hashing "<sessionID>-<turn>" with
// SHA-256, reading the digest as a big unsigned integer and reducing it
// modulo the candidate count. An unrecognised scam type falls back to the
// unknown catalog; an unrecognised stage falls back to that type's exit list.
func Select(scamType detect.ScamType, stage session.Stage, sessionID string, turn int) (Persona, string) {
	byStage, ok := catalog[scamType]
	if !ok {
		byStage = catalog[detect.Unknown]
	}
	candidates, ok := byStage[stage]
	if !ok {
		candidates = byStage[session.StageExit]
	}

	seed := fmt.Sprintf("%s-%d", sessionID, turn)
	sum := sha256.Sum256([]byte(seed))
	idx := new(big.Int).Mod(
		new(big.Int).SetBytes(sum[:]),
		big.NewInt(int64(len(candidates))),
	).Int64()

	return ForType(scamType), candidates[idx]
}
