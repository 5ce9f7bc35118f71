package wire

import (
	"testing"

	"google.golang.org/grpc/encoding"
)

func TestCodecRegistered(t *testing.T) {
	if encoding.GetCodecV2(CodecName) == nil {
		t.Fatal("json codec not registered")
	}
	c := jsonCodec{}

	in := &SendResponse{Message: &Message{ID: 3, Text: "hi", TimestampUnixMs: 10}}
	data, err := c.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"message":{"id":3,"sender_id":0,"receiver_id":0,"text":"hi","timestamp_unix_ms":10},"noop":false}`
	if string(data) != want {
		t.Errorf("Marshal = %s\nwant %s", data, want)
	}

	var out SendResponse
	if err := c.Unmarshal([]byte(`{"noop":true}`), &out); err != nil {
		t.Fatal(err)
	}
	if !out.Noop || out.Message != nil {
		t.Errorf("Unmarshal = %+v", out)
	}
}
