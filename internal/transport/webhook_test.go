package transport

import (
	"testing"
)

func TestEventFromUpdate_Text(t *testing.T) {
	u := &update{
		UpdateID: 1,
		Message:  &message{Chat: chat{ID: 42}, Text: "/start"},
	}

	ev, callbackID, ok := eventFromUpdate(u)
	if !ok {
		t.Fatal("update dropped")
	}
	if ev.Kind != EventText || ev.ChatID != 42 || ev.Text != "/start" {
		t.Errorf("event = %+v", ev)
	}
	if callbackID != "" {
		t.Errorf("callbackID = %q, want empty", callbackID)
	}
}

func TestEventFromUpdate_Voice(t *testing.T) {
	u := &update{
		Message: &message{
			Chat:  chat{ID: 42},
			Voice: &voicePayload{FileID: "file-abc", Duration: 75},
		},
	}

	ev, _, ok := eventFromUpdate(u)
	if !ok {
		t.Fatal("update dropped")
	}
	if ev.Kind != EventVoice {
		t.Fatalf("kind = %q, want voice", ev.Kind)
	}
	if ev.Voice == nil || ev.Voice.FileID != "file-abc" || ev.Voice.Duration != 75 {
		t.Errorf("voice = %+v", ev.Voice)
	}
}

func TestEventFromUpdate_Callback(t *testing.T) {
	u := &update{
		Callback: &callbackQuery{
			ID:      "cb-1",
			Data:    "random_part1",
			Message: &message{Chat: chat{ID: 42}},
		},
	}

	ev, callbackID, ok := eventFromUpdate(u)
	if !ok {
		t.Fatal("update dropped")
	}
	if ev.Kind != EventButton || ev.Button != "random_part1" || ev.ChatID != 42 {
		t.Errorf("event = %+v", ev)
	}
	if callbackID != "cb-1" {
		t.Errorf("callbackID = %q", callbackID)
	}
}

func TestEventFromUpdate_VoiceTakesPrecedenceOverCaption(t *testing.T) {
	u := &update{
		Message: &message{
			Chat:  chat{ID: 42},
			Text:  "a caption",
			Voice: &voicePayload{FileID: "file-abc", Duration: 10},
		},
	}

	ev, _, ok := eventFromUpdate(u)
	if !ok {
		t.Fatal("update dropped")
	}
	if ev.Kind != EventVoice {
		t.Errorf("kind = %q, want voice", ev.Kind)
	}
}

func TestEventFromUpdate_Unsupported(t *testing.T) {
	cases := []struct {
		name string
		u    *update
	}{
		{"empty", &update{}},
		{"message without text", &update{Message: &message{Chat: chat{ID: 42}}}},
		{"callback without message", &update{Callback: &callbackQuery{ID: "cb-1", Data: "x"}}},
	}
	for _, tc := range cases {
		if _, _, ok := eventFromUpdate(tc.u); ok {
			t.Errorf("%s: update not dropped", tc.name)
		}
	}
}
