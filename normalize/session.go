package normalize

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/binharvest/typelib"
	"github.com/binharvest/typelib/errors"
	"github.com/binharvest/typelib/types"
)

// Session harvests native types from a decompiler backend into a catalog.
//
// A session tracks which signatures it has already traversed, so feeding it
// every variable type in a binary costs one traversal per distinct type.
// Sessions are not safe for concurrent use.
type Session struct {
	id      string
	cat     *types.Catalog
	visited map[string]struct{}
	log     *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger attaches a logger to the session. The default is a no-op
// logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithCatalog makes the session populate an existing catalog instead of a
// fresh one. Names already present keep their first registration.
func WithCatalog(cat *types.Catalog) Option {
	return func(s *Session) { s.cat = cat }
}

// NewSession creates an empty harvesting session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		id:      uuid.NewString(),
		cat:     types.NewCatalog(),
		visited: make(map[string]struct{}),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(zap.String("session", s.id))
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Catalog returns the catalog the session populates. The catalog remains
// usable after the session is discarded.
func (s *Session) Catalog() *types.Catalog { return s.cat }

// Add traverses t and registers it and its whole dependency closure in the
// session catalog. Adding the same signature twice is a no-op.
//
// On error the catalog keeps everything registered before the failure.
func (s *Session) Add(t typelib.NativeType) error {
	return s.add(t, nil)
}

func (s *Session) add(t typelib.NativeType, path []string) error {
	sig := t.Signature()
	if _, ok := s.visited[sig]; ok {
		return nil
	}
	s.visited[sig] = struct{}{}

	switch {
	case t.IsVoid():
		// Void terminates traversal and is never registered.
		return nil

	case t.IsPointer():
		// The pointer goes in before its pointee is traversed. Pointer
		// size never depends on the target, and registering first is
		// what lets self-referential structures terminate.
		ptr := types.NewPointer(catalogName(t.Pointee()))
		s.cat.Put(ptr.String(), ptr)
		s.log.Debug("registered pointer", zap.String("name", ptr.String()))
		return s.add(t.Pointee(), append(path, ptr.String()))

	case t.IsArray():
		// The element must resolve before the array can size itself.
		if err := s.add(t.Element(), append(path, sig)); err != nil {
			return err
		}
		arr, err := types.NewArray(s.cat, catalogName(t.Element()), t.ElementCount())
		if err != nil {
			return err
		}
		s.cat.Put(arr.String(), arr)
		s.log.Debug("registered array",
			zap.String("name", arr.String()),
			zap.Uint64("size", arr.Size()))
		return nil

	case t.IsUDT() && t.IsUnion():
		return s.addUnion(t, path)

	case t.IsUDT():
		return s.addStruct(t, path)

	default:
		s.cat.Put(sig, types.NewPrimitive(sig, t.ByteSize()))
		s.log.Debug("registered primitive",
			zap.String("name", sig),
			zap.Uint64("size", t.ByteSize()))
		return nil
	}
}

func (s *Session) addStruct(t typelib.NativeType, path []string) error {
	name := t.Signature()
	members := t.Members()
	layout := make([]types.Member, 0, len(members))

	var nextBit uint64
	for _, m := range members {
		if m.BitOffset < nextBit {
			return errors.InvalidData(errors.PhaseNormalize,
				append(path, name, m.Name),
				fmt.Sprintf("member starts at bit %d, before end of previous member at bit %d",
					m.BitOffset, nextBit))
		}
		// Backends report offsets in bits; sub-byte gaps between
		// bitfields do not produce padding.
		if pad := (m.BitOffset - nextBit) / 8; pad > 0 {
			layout = append(layout, types.NewPadding(pad))
		}

		if err := s.add(m.Type, append(path, name)); err != nil {
			return err
		}
		f, err := types.NewField(s.cat, m.Name, catalogName(m.Type))
		if err != nil {
			return err
		}
		layout = append(layout, f)
		nextBit = m.BitOffset + m.BitSize
	}

	st := types.NewStruct(name, layout)
	s.cat.Put(st.Name, st)
	s.log.Debug("registered struct",
		zap.String("name", name),
		zap.Uint64("size", st.Size()),
		zap.Int("members", len(members)))
	return nil
}

func (s *Session) addUnion(t typelib.NativeType, path []string) error {
	name := t.Signature()
	members := t.Members()
	fields := make([]*types.Field, 0, len(members))

	for _, m := range members {
		if err := s.add(m.Type, append(path, name)); err != nil {
			return err
		}
		f, err := types.NewField(s.cat, m.Name, catalogName(m.Type))
		if err != nil {
			return err
		}
		fields = append(fields, f)
	}

	// Union size is the widest member; any trailing padding a backend
	// reports is not modeled during harvesting.
	u := types.NewUnion(name, fields, nil)
	s.cat.Put(u.Name, u)
	s.log.Debug("registered union",
		zap.String("name", name),
		zap.Uint64("size", u.Size()),
		zap.Int("members", len(members)))
	return nil
}

// catalogName returns the name a type is registered under: the rendered
// pointer or array form for those kinds, the backend signature otherwise.
func catalogName(t typelib.NativeType) string {
	switch {
	case t.IsPointer():
		return catalogName(t.Pointee()) + " *"
	case t.IsArray():
		return fmt.Sprintf("%s[%d]", catalogName(t.Element()), t.ElementCount())
	default:
		return t.Signature()
	}
}
