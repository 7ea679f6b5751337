package http

import (
	"fmt"
	"net/http"

	"github.com/mitchellh/mapstructure"
)

// decodeForm maps a submitted form onto dest using the field names in
// mapstructure tags. Decoding is weakly typed; repeated fields keep
// their first value.
func decodeForm(r *http.Request, dest any) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("failed to parse form: %w", err)
	}
	flat := make(map[string]any, len(r.PostForm))
	for k, vs := range r.PostForm {
		if len(vs) > 0 {
			flat[k] = vs[0]
		}
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           dest,
	})
	if err != nil {
		return fmt.Errorf("failed to build form decoder: %w", err)
	}
	if err := dec.Decode(flat); err != nil {
		return fmt.Errorf("failed to decode form: %w", err)
	}
	return nil
}
