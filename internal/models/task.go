package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidStatus = errors.New("invalid task status")

// Status is the progress of a task. Only the values
// declared below are valid.
type Status string

const (
	StatusToDo       Status = "to_do"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"

	DefaultStatus = StatusToDo
)

// ParseStatus returns ErrInvalidStatus if s is not one
// of the known status values.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

func (s Status) IsValid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

func (s Status) MarshalJSON() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
	}
	return json.Marshal(string(s))
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, data)
	}

	status, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Scan implements sql.Scanner so that a row holding an
// unknown status is rejected on read-back.
func (s *Status) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case Status:
		raw = string(v)
	case nil:
		return fmt.Errorf("%w: null", ErrInvalidStatus)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidStatus, src)
	}

	status, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

func (s Status) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
	}
	return string(s), nil
}

type Task struct {
	ID          int64
	Title       string
	Description string
	Assignee    string
	Status      Status
}
