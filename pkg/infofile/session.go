package infofile

import (
	"github.com/google/uuid"

	"github.com/smraw-go/smraw/pkg/infofile/wellknown"
)

// WithSessionID stamps a freshly generated session_id into the
// [session] section. It is purely additive and opt-in: callers who
// never invoke it get no [session] section at all, so the deterministic
// round-trip property is unaffected by default.
func (f *File) WithSessionID() *File {
	f.Set(wellknown.SectionSession, wellknown.SessionID, uuid.NewString())
	return f
}
