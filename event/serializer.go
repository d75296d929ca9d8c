package event

import (
	"encoding/json"
	"errors"
	"strconv"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

var ErrCorruptEvent = errors.New("event: corrupt encoding")

type Serializer interface {
	Encode(*Event) ([]byte, error)
	Decode([]byte) (*Event, error)
}

// ---------- JSON ----------

type JSONSerializer struct{}

func (JSONSerializer) Encode(e *Event) ([]byte, error) {
	return json.Marshal(e)
}

func (JSONSerializer) Decode(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, ErrCorruptEvent
	}
	return &e, nil
}

// ---------- Protobuf ----------

// ProtoSerializer encodes events as a protobuf Struct. Sequence
// numbers ride as decimal strings: Struct numbers are float64 and
// would lose precision past 2^53.
type ProtoSerializer struct{}

func (ProtoSerializer) Encode(e *Event) ([]byte, error) {
	s, err := structpb.NewStruct(map[string]any{
		"seq":     strconv.FormatUint(e.Seq, 10),
		"time":    strconv.FormatInt(e.Time, 10),
		"op":      float64(e.Op),
		"key":     e.Key,
		"payload": e.Payload,
	})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

func (ProtoSerializer) Decode(data []byte) (*Event, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, ErrCorruptEvent
	}
	f := s.GetFields()
	seq, err := strconv.ParseUint(f["seq"].GetStringValue(), 10, 64)
	if err != nil {
		return nil, ErrCorruptEvent
	}
	ts, err := strconv.ParseInt(f["time"].GetStringValue(), 10, 64)
	if err != nil {
		return nil, ErrCorruptEvent
	}
	return &Event{
		Seq:     seq,
		Time:    ts,
		Op:      Op(f["op"].GetNumberValue()),
		Key:     f["key"].GetStringValue(),
		Payload: f["payload"].GetStringValue(),
	}, nil
}
