package protocol

import (
	"errors"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

type fakeClient struct {
	protocols map[xproto.Window][]string
	queryErr  error
	sendErr   error
	killErr   error

	sent   []xproto.Window
	killed []xproto.Window
}

func (f *fakeClient) Protocols(win xproto.Window) ([]string, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.protocols[win], nil
}

func (f *fakeClient) SendDelete(win xproto.Window, _ xproto.Timestamp) error {
	f.sent = append(f.sent, win)
	return f.sendErr
}

func (f *fakeClient) Kill(win xproto.Window) error {
	f.killed = append(f.killed, win)
	return f.killErr
}

func TestRequestClose(t *testing.T) {
	tests := []struct {
		name       string
		client     *fakeClient
		want       Outcome
		wantSent   int
		wantKilled int
		wantErr    bool
	}{
		{
			name:     "advertises delete",
			client:   &fakeClient{protocols: map[xproto.Window][]string{7: {"WM_TAKE_FOCUS", DeleteWindow}}},
			want:     OutcomeGraceful,
			wantSent: 1,
		},
		{
			name:       "no delete protocol",
			client:     &fakeClient{protocols: map[xproto.Window][]string{7: {"WM_TAKE_FOCUS"}}},
			want:       OutcomeForced,
			wantKilled: 1,
		},
		{
			name:       "no protocols property",
			client:     &fakeClient{},
			want:       OutcomeForced,
			wantKilled: 1,
		},
		{
			name:       "query failure falls back to kill",
			client:     &fakeClient{queryErr: errors.New("BadWindow")},
			want:       OutcomeForced,
			wantKilled: 1,
		},
		{
			name: "send failure is reported but stays graceful",
			client: &fakeClient{
				protocols: map[xproto.Window][]string{7: {DeleteWindow}},
				sendErr:   errors.New("connection reset"),
			},
			want:     OutcomeGraceful,
			wantSent: 1,
			wantErr:  true,
		},
		{
			name:       "kill failure is reported",
			client:     &fakeClient{killErr: errors.New("BadValue")},
			want:       OutcomeForced,
			wantKilled: 1,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RequestClose(tt.client, 7, 0)
			if got != tt.want {
				t.Fatalf("outcome = %s, want %s", got, tt.want)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(tt.client.sent) != tt.wantSent {
				t.Fatalf("sent = %v, want %d message(s)", tt.client.sent, tt.wantSent)
			}
			if len(tt.client.killed) != tt.wantKilled {
				t.Fatalf("killed = %v, want %d kill(s)", tt.client.killed, tt.wantKilled)
			}
		})
	}
}

func TestRequestClose_WrapsUnderlyingError(t *testing.T) {
	cause := errors.New("BadValue")
	_, err := RequestClose(&fakeClient{killErr: cause}, 9, 0)
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want wrapping %v", err, cause)
	}
}
