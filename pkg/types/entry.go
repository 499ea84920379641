package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Entry is one record of the study manager.
// content, location and completed stay NULL when they were not supplied at creation.
type Entry struct {
	ID        string     `json:"id" db:"id"`
	Content   *string    `json:"content" db:"content"`
	Location  *string    `json:"location" db:"location"`
	Completed *bool      `json:"completed" db:"completed"`
	Tags      StringList `json:"tags" db:"tags"`
	CreatedAt int64      `json:"createdAt" db:"created_at"`
	UpdatedAt int64      `json:"updatedAt" db:"updated_at"`
}

// EntryFilter selects entries. Zero value matches everything.
type EntryFilter struct {
	ID       string
	Location *string
}

// EntryUpdate holds the fields an update writes. Nil fields are left untouched,
// updated_at is always refreshed.
type EntryUpdate struct {
	Content   *string
	Location  *string
	Completed *bool
	Tags      *StringList
}

func (u EntryUpdate) SetMap() map[string]interface{} {
	m := make(map[string]interface{})
	if u.Content != nil {
		m["content"] = *u.Content
	}
	if u.Location != nil {
		m["location"] = *u.Location
	}
	if u.Completed != nil {
		m["completed"] = *u.Completed
	}
	if u.Tags != nil {
		m["tags"] = *u.Tags
	}
	return m
}

// StringList is an ordered list of strings persisted as a JSON array.
type StringList []string

func (s StringList) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	raw, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements the sql.Scanner interface.
func (s *StringList) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		return s.scanBytes(src)
	case string:
		return s.scanBytes([]byte(src))
	case nil:
		*s = StringList{}
		return nil
	}

	return fmt.Errorf("cannot convert %T to StringList", src)
}

func (s *StringList) scanBytes(src []byte) error {
	if len(src) == 0 {
		*s = StringList{}
		return nil
	}
	var list []string
	if err := json.Unmarshal(src, &list); err != nil {
		return err
	}
	if list == nil {
		list = []string{}
	}
	*s = list
	return nil
}
