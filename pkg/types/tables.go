package types

import "fmt"

type TableName string

func (s TableName) Name() string {
	return fmt.Sprintf("%s%s", TABLE_PREFIX, s)
}

const TABLE_PREFIX = "sm_"

const (
	TABLE_MANAGER_ENTRY     = TableName("manager_entry")
	TABLE_SCHEMA_MIGRATIONS = TableName("schema_migrations")
)
