package utils

import (
	"fmt"
	"time"

	formTypes "github.com/formpilot/formpilot-backend/pkg/form/types"
)

// GenerateFormVersionID produces a short human-readable version id of the
// form "YY-MM-counter", unique among the already stored versions.
func GenerateFormVersionID(oldVersions []*formTypes.Form) string {
	date := time.Now().Format("06-01")

	counter := 1
	for {
		newID := fmt.Sprintf("%s-%d", date, counter)

		idAlreadyPresent := false
		for _, v := range oldVersions {
			if v.VersionID == newID {
				idAlreadyPresent = true
				break
			}
		}
		if !idAlreadyPresent {
			return newID
		}
		counter++
	}
}
