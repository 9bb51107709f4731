package utils

import (
	"fmt"
	"testing"
	"time"

	formTypes "github.com/formpilot/formpilot-backend/pkg/form/types"
)

func TestGenerateFormVersionID(t *testing.T) {
	prefix := time.Now().Format("06-01")

	t.Run("no previous versions", func(t *testing.T) {
		id := GenerateFormVersionID(nil)
		if id != prefix+"-1" {
			t.Errorf("unexpected version id: %s", id)
		}
	})

	t.Run("skips taken ids", func(t *testing.T) {
		oldVersions := []*formTypes.Form{
			{VersionID: prefix + "-1"},
			{VersionID: prefix + "-2"},
			{VersionID: "23-05-1"},
		}
		id := GenerateFormVersionID(oldVersions)
		if id != prefix+"-3" {
			t.Errorf("unexpected version id: %s", id)
		}
	})

	t.Run("ids stay unique over many versions", func(t *testing.T) {
		oldVersions := []*formTypes.Form{}
		for i := 0; i < 25; i++ {
			id := GenerateFormVersionID(oldVersions)
			for _, v := range oldVersions {
				if v.VersionID == id {
					t.Fatalf("duplicate version id generated: %s", id)
				}
			}
			oldVersions = append(oldVersions, &formTypes.Form{VersionID: id})
		}
		if last := oldVersions[len(oldVersions)-1].VersionID; last != fmt.Sprintf("%s-25", prefix) {
			t.Errorf("unexpected last version id: %s", last)
		}
	})
}
