package ledger

import (
	"errors"

	"github.com/davidahmann/steward/pkg/types"
)

var ErrNoEscalation = errors.New("record has no escalation to route")

// RouteEscalation writes the human-review stub for an escalated record, using
// the same naming scheme and write-once guarantee as the record store. It is
// a notification artifact, not a workflow; resolution state is not tracked.
func RouteEscalation(record types.JudgmentRecord, dir string) (string, error) {
	if record.Escalation == nil {
		return "", ErrNoEscalation
	}

	stub := types.EscalationStub{
		RecordID:    record.RecordID,
		Timestamp:   record.Timestamp,
		MandateID:   record.Authority.MandateID,
		ProcedureID: record.Authority.ProcedureID,
		Reason:      record.Escalation.EscalationReason,
	}

	path, err := artifactPath(dir, record.Timestamp, record.RecordID)
	if err != nil {
		return "", err
	}
	if err := writeOnce(path, stub); err != nil {
		return "", err
	}
	return path, nil
}
