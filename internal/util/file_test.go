package util

import "testing"

func TestExtensionAllowed(t *testing.T) {
	cases := []struct {
		filename string
		allowed  []string
		want     bool
	}{
		{"memory.mp3", AllowedAudioExtensions, true},
		{"MEMORY.MP3", AllowedAudioExtensions, true},
		{"voice.m4a", AllowedAudioExtensions, true},
		{"clip.mp4", AllowedAudioExtensions, false},
		{"clip.mp4", AllowedVideoExtensions, true},
		{"clip.webm", AllowedVideoExtensions, true},
		{"photo.jpg", AllowedVideoExtensions, false},
		{"noext", AllowedAudioExtensions, false},
		{"", AllowedAudioExtensions, false},
	}
	for _, tc := range cases {
		if got := ExtensionAllowed(tc.filename, tc.allowed); got != tc.want {
			t.Errorf("ExtensionAllowed(%q) = %v, want %v", tc.filename, got, tc.want)
		}
	}
}
