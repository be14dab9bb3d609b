// Package api defines the wire contract of the mindkeeper.WellnessService
// gRPC service: message types, the service descriptor and a typed client.
// Messages travel as JSON using a codec registered under the "json"
// content-subtype, so requests carry "application/grpc+json". This is not
// wire compatible with protobuf-based gRPC tooling: grpcurl, reflection
// clients and stubs generated from a .proto file expect "application/grpc"
// with protobuf bodies and cannot talk to this service.
package api

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype of every call on this service.
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
