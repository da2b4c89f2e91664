package business

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/Legend-Systems/service-media/service/types"
	"github.com/Legend-Systems/service-media/service/utils"
)

const storageKeyRandomLength = 32

// BuildStorageKey derives the blob key for a new object. The key
// partitions objects by tenant and creation date for operational
// housekeeping and carries a long random component so keys cannot be
// guessed across tenants. The caller supplied filename only ever
// contributes its extension.
func BuildStorageKey(scope types.AccessScope, originalName string, variant types.VariantKind, now time.Time) types.StorageKey {
	branch := scope.BranchID
	if branch == "" {
		branch = "org"
	}

	ext := sanitizeExtension(originalName)
	if variant != types.VariantOriginal {
		// Derivatives are always re-encoded as JPEG.
		ext = ".jpg"
	}

	key := fmt.Sprintf("%s/%s/%s/%s_%s%s",
		scope.OrgID,
		branch,
		now.UTC().Format("2006/01/02"),
		variant,
		utils.GenerateRandomString(storageKeyRandomLength),
		ext,
	)

	return types.StorageKey(key)
}

// sanitizeExtension extracts a safe lowercase extension from a caller
// supplied filename, empty when nothing usable remains.
func sanitizeExtension(name string) string {
	ext := strings.ToLower(path.Ext(path.Base(name)))
	if ext == "" || ext == "." {
		return ""
	}

	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	if len(ext) > 10 {
		return ""
	}

	return ext
}
