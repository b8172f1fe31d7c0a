package models

import (
	"encoding/json"
	"time"
)

// SOPVersion is an immutable point-in-time copy of an SOP together with its
// steps and responsibilities. The snapshot column holds the serialized
// SnapshotPayload; version numbers are dense per SOP, starting at 1.
type SOPVersion struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	SOPID         uint      `json:"sop_id" gorm:"column:sop_id;not null;index"`
	VersionNumber int       `json:"version_number" gorm:"not null"`
	Snapshot      string    `json:"snapshot" gorm:"type:text;not null"`
	ChangeSummary string    `json:"change_summary"`
	CreatedBy     *uint     `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`

	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}

func (SOPVersion) TableName() string {
	return "sop_versions"
}

// SnapshotPayload is the serialized shape stored in SOPVersion.Snapshot:
// the full parent record plus both child collections, never a delta.
type SnapshotPayload struct {
	SOP              SOP                 `json:"sop"`
	Steps            []SOPStep           `json:"steps"`
	Responsibilities []SOPResponsibility `json:"responsibilities"`
}

// EncodeSnapshot serializes the full state of an SOP. The parent record is
// copied with its relation slices stripped so children appear exactly once.
func EncodeSnapshot(sop SOP, steps []SOPStep, responsibilities []SOPResponsibility) (string, error) {
	sop.Steps = nil
	sop.Responsibilities = nil
	sop.Creator = nil
	sop.Approver = nil
	sop.Assignee = nil

	payload := SnapshotPayload{
		SOP:              sop,
		Steps:            steps,
		Responsibilities: responsibilities,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeSnapshot parses a stored snapshot blob.
func DecodeSnapshot(snapshot string) (*SnapshotPayload, error) {
	var payload SnapshotPayload
	if err := json.Unmarshal([]byte(snapshot), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
