package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// Identity derives the stable document identity for a file: the SHA-256
// of "absolute path | byte size", hex-truncated to 32 characters.
//
// A rename or any change that alters the byte size makes the document
// look unseen again; an in-place edit that preserves the exact size does
// not. This trades exactness for never reading the file body, which
// keeps the ledger check free even for multi-hundred-MB documents.
func Identity(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", abs, err)
	}

	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d", abs, info.Size())))
	return hex.EncodeToString(sum[:16]), nil
}
