package diary

import (
	"fmt"
	"path/filepath"
)

// EntryExt is the extension of every entry file.
const EntryExt = ".txt"

// EntryPath returns root/YYYY/MM/DD.txt for d. Distinct dates never share a path.
func EntryPath(root string, d Date) string {
	return filepath.Join(root, RelativePath(d))
}

// RelativePath returns the entry location for d relative to the diary root.
func RelativePath(d Date) string {
	return filepath.Join(
		fmt.Sprintf("%04d", d.Year),
		fmt.Sprintf("%02d", d.Month),
		fmt.Sprintf("%02d", d.Day)+EntryExt,
	)
}

// DateFromRelativePath is the inverse of RelativePath. It returns false for
// paths that do not name a valid entry.
func DateFromRelativePath(rel string) (Date, bool) {
	dir, file := filepath.Split(rel)
	if filepath.Ext(file) != EntryExt {
		return Date{}, false
	}
	day := file[:len(file)-len(EntryExt)]

	dir = filepath.Clean(dir)
	monthDir := filepath.Base(dir)
	yearDir := filepath.Base(filepath.Dir(dir))
	if filepath.Dir(filepath.Dir(dir)) != "." {
		return Date{}, false
	}

	d, err := ParseDate(yearDir + "-" + monthDir + "-" + day)
	if err != nil {
		return Date{}, false
	}
	return d, true
}
