package misc

import "testing"

func TestIdentity(t *testing.T) {
	if GetAppName() != "fx2tw" {
		t.Errorf("GetAppName() = %q", GetAppName())
	}
	if len(GetVersion()) == 0 {
		t.Error("GetVersion() is empty")
	}
	if len(GetGitHash()) == 0 {
		t.Error("GetGitHash() is empty")
	}
}
