package sandbox

import (
	"fmt"
	"os"
)

// checkReadable fails when an existing file is already over the byte
// ceiling, before any content is loaded.
func (s *Sandbox) checkReadable(info os.FileInfo) error {
	if info.Size() > s.maxFileSize {
		return fmt.Errorf("%w: file is %d bytes, limit is %d", ErrSizeExceeded, info.Size(), s.maxFileSize)
	}
	return nil
}

// checkWritable fails when content to be written exceeds the ceiling.
// The length is the UTF-8 byte length, not the rune count.
func (s *Sandbox) checkWritable(contentBytes int64) error {
	if contentBytes > s.maxFileSize {
		return fmt.Errorf("%w: content is %d bytes, limit is %d", ErrSizeExceeded, contentBytes, s.maxFileSize)
	}
	return nil
}

// checkAppend fails when the current size plus the new content would
// exceed the ceiling. The check is against the combined size, not the
// new content alone.
func (s *Sandbox) checkAppend(currentBytes, addedBytes int64) error {
	if currentBytes+addedBytes > s.maxFileSize {
		return fmt.Errorf("%w: appending %d bytes to %d would exceed limit of %d",
			ErrSizeExceeded, addedBytes, currentBytes, s.maxFileSize)
	}
	return nil
}
