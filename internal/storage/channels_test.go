package db

import "testing"

func TestPlanChannelWrite(t *testing.T) {
	tests := []struct {
		name      string
		exists    bool
		username  string
		overwrite bool
		want      UpsertOutcome
	}{
		{name: "new channel with handle", exists: false, username: "yle_news", overwrite: true, want: UpsertInserted},
		{name: "new channel without handle", exists: false, username: "", overwrite: true, want: UpsertSkipped},
		{name: "known channel is overwritten", exists: true, username: "yle_news", overwrite: true, want: UpsertUpdated},
		{name: "known channel without handle is overwritten", exists: true, username: "", overwrite: true, want: UpsertUpdated},
		{name: "ensure leaves known channel", exists: true, username: "yle_news", overwrite: false, want: UpsertUnchanged},
		{name: "ensure inserts unknown channel", exists: false, username: "yle_news", overwrite: false, want: UpsertInserted},
		{name: "ensure skips unknown channel without handle", exists: false, username: "", overwrite: false, want: UpsertSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := planChannelWrite(tt.exists, tt.username, tt.overwrite); got != tt.want {
				t.Errorf("planChannelWrite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSafeIntToInt32(t *testing.T) {
	if got := safeIntToInt32(1 << 40); got != 1<<31-1 {
		t.Errorf("expected clamp to MaxInt32, got %d", got)
	}

	if got := safeIntToInt32(-(1 << 40)); got != -1<<31 {
		t.Errorf("expected clamp to MinInt32, got %d", got)
	}
}

func TestSanitizeUTF8(t *testing.T) {
	if got := SanitizeUTF8("Suomi\xffFinland"); got != "SuomiFinland" {
		t.Errorf("unexpected sanitize result %q", got)
	}
}
