package util

import "testing"

func TestNormalizeChannelURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare handle", "@somecreator", "https://www.youtube.com/@somecreator/videos"},
		{"handle url", "https://www.youtube.com/@somecreator", "https://www.youtube.com/@somecreator/videos"},
		{"handle with trailing slash", "https://www.youtube.com/@somecreator/", "https://www.youtube.com/@somecreator/videos"},
		{"channel id", "https://www.youtube.com/channel/UC123abc", "https://www.youtube.com/channel/UC123abc/videos"},
		{"legacy user", "https://www.youtube.com/user/oldname", "https://www.youtube.com/user/oldname/videos"},
		{"already videos tab", "https://www.youtube.com/@somecreator/videos", "https://www.youtube.com/@somecreator/videos"},
		{"playlist untouched", "https://www.youtube.com/playlist?list=PL123", "https://www.youtube.com/playlist?list=PL123"},
		{"watch untouched", "https://www.youtube.com/watch?v=abc", "https://www.youtube.com/watch?v=abc"},
		{"schemeless host", "youtube.com/@somecreator", "https://youtube.com/@somecreator/videos"},
		{"empty", "", ""},
		{"whitespace trimmed", "  @somecreator  ", "https://www.youtube.com/@somecreator/videos"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeChannelURL(tc.in); got != tc.want {
				t.Errorf("NormalizeChannelURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestValidateVideoURL(t *testing.T) {
	if err := ValidateVideoURL("https://youtu.be/abc123"); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
	for _, bad := range []string{"", "not a url", "/relative/path"} {
		if err := ValidateVideoURL(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestSplitURLList(t *testing.T) {
	in := "https://a.example/1\n\n  https://a.example/2  \r\nhttps://a.example/3\n"
	got := SplitURLList(in)
	want := []string{"https://a.example/1", "https://a.example/2", "https://a.example/3"}
	if len(got) != len(want) {
		t.Fatalf("got %d urls, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("url %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"Plain Title":        "Plain Title",
		`a/b\c:d*e?f"g<h>i|`: "a_b_c_d_e_f_g_h_i",
		"":                   "untitled",
		"___":                "untitled",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
