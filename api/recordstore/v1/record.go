// Package recordstorepb defines the wire surface of the recordstore.v1.RecordStore
// service: message types, the codec they travel under, and generated-style
// client/server plumbing for each call pattern.
package recordstorepb

// Record is a single entry in the record store.
// Id and CreatedAt are assigned by the store and immutable after creation.
type Record struct {
	Id        int64  `json:"id"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Age       int32  `json:"age"`
	CreatedAt string `json:"created_at"`
}

// GetRecordRequest looks a record up by id.
type GetRecordRequest struct {
	Id int64 `json:"id"`
}

// CreateRecordRequest carries the caller-supplied fields of a new record.
type CreateRecordRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Age     int32  `json:"age"`
}

// ListRecordsRequest asks for a stream of all records.
type ListRecordsRequest struct{}

// BatchCreateRecordsResponse is the terminal response of a BatchCreateRecords
// call: how many records were created, and the records themselves in the
// order the requests arrived.
type BatchCreateRecordsResponse struct {
	CreatedCount int32     `json:"created_count"`
	Records      []*Record `json:"records"`
}
