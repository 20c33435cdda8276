// Package proto holds the change feed protobuf messages and gRPC bindings
// generated from changefeed.proto, plus a resuming feed client.
package proto

//go:generate protoc -I . --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative changefeed.proto

// ChangeNotification.Type values
const (
	TypeChange = "change"
	TypeReset  = "reset"
)
