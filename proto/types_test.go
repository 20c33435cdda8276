package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	goproto "google.golang.org/protobuf/proto"
)

func TestChangeNotification_WireFormat(t *testing.T) {
	in := &ChangeNotification{
		Type:       TypeChange,
		QueueId:    42,
		EntityType: "product",
		EntityId:   "p-1",
		Operation:  "update",
		Context:    "admin-backend",
		UserName:   "u-7",
		CreatedAt:  "2024-05-01 12:00:00.250",
	}

	data, err := goproto.Marshal(in)
	require.NoError(t, err)

	out := &ChangeNotification{}
	require.NoError(t, goproto.Unmarshal(data, out))
	assert.True(t, goproto.Equal(in, out))
	assert.Equal(t, "changebridge.v1.ChangeNotification", string(out.ProtoReflect().Descriptor().FullName()))
}

func TestDescriptor_Service(t *testing.T) {
	svc := File_changefeed_proto.Services().ByName("ChangeFeed")
	require.NotNil(t, svc)

	subscribe := svc.Methods().ByName("Subscribe")
	require.NotNil(t, subscribe)
	assert.True(t, subscribe.IsStreamingServer())
	assert.Equal(t, "changebridge.v1.ChangeNotification", string(subscribe.Output().FullName()))
	assert.Equal(t, ChangeFeed_ServiceDesc.ServiceName, string(svc.FullName()))
}

func TestDefaultCodecIsProtobuf(t *testing.T) {
	codec := encoding.GetCodec("proto")
	require.NotNil(t, codec)

	data, err := codec.Marshal(&HealthCheckResponse{Healthy: true, MaxSequence: 9, Subscribers: 2})
	require.NoError(t, err)

	var resp HealthCheckResponse
	require.NoError(t, codec.Unmarshal(data, &resp))
	assert.Equal(t, uint64(9), resp.GetMaxSequence())
	assert.Equal(t, int32(2), resp.GetSubscribers())
}

func TestSubscribeRequest_JSONNames(t *testing.T) {
	b, err := protojson.Marshal(&SubscribeRequest{ConsumerId: "c1", FromSequence: 3, EntityTypes: []string{"media"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"consumerId":"c1","fromSequence":"3","entityTypes":["media"]}`, string(b))
}
