package state

import (
	"fmt"
	"runtime"
	"time"

	"golang.org/x/text/encoding/ianaindex"

	"fx2tw/config"
	"fx2tw/translate"
)

func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

// Prepare derives conversion settings from configuration. Values already
// supplied on command line (non-zero workers, encoding) take precedence.
func (e *LocalEnv) Prepare(conv *config.ConversionConfig, scope string) error {
	if len(scope) == 0 {
		scope = conv.Scope
	}
	s, err := translate.ParseScope(scope)
	if err != nil {
		return err
	}
	e.Registry = translate.NewRegistry(s)

	if e.Workers <= 0 {
		e.Workers = conv.Workers
	}
	if e.Workers <= 0 {
		e.Workers = runtime.NumCPU()
	}

	if e.Encoding == nil && len(conv.Encoding) > 0 {
		enc, err := ianaindex.IANA.Encoding(conv.Encoding)
		if err != nil {
			return fmt.Errorf("unknown input encoding %q: %w", conv.Encoding, err)
		}
		if enc == nil {
			return fmt.Errorf("input encoding %q is not supported", conv.Encoding)
		}
		e.Encoding = enc
	}
	return nil
}
