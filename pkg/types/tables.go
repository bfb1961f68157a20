package types

import "fmt"

type TableName string

func (s TableName) Name() string {
	return fmt.Sprintf("%s%s", TABLE_PREFIX, s)
}

const TABLE_PREFIX = "corpora_"

const (
	TABLE_TENANT           = TableName("tenant")
	TABLE_DOCUMENT         = TableName("document")
	TABLE_DOCUMENT_VERSION = TableName("document_version")
	TABLE_CHUNK            = TableName("chunk")
	TABLE_CHUNK_VECTOR     = TableName("chunk_vector")
	TABLE_PLAYGROUND       = TableName("playground")
	TABLE_EVENT            = TableName("event")
)
