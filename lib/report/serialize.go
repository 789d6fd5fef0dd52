package report

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// Serialize returns the canonical json form of r: two space indentation,
// keys sorted at every level and a trailing newline. Equal reports always
// serialize to the same bytes.
func Serialize(r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "error serializing report")
	}

	return append(data, '\n'), nil
}

func Deserialize(data []byte) (*Report, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	result := &Report{}
	err := decoder.Decode(result)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing report")
	}

	result.normalize()

	return result, nil
}

// normalize makes collections missing from the json empty instead of nil,
// the same shape Build creates.
func (r *Report) normalize() {
	if r.Parameter.Exclude == nil {
		r.Parameter.Exclude = []string{}
	}
	if r.Parameter.Member == nil {
		r.Parameter.Member = []string{}
	}
	if r.Result.Authors == nil {
		r.Result.Authors = []string{}
	}
	if r.Result.Files == nil {
		r.Result.Files = map[string]FileView{}
	}

	for k, f := range r.Result.Files {
		if f.Authors == nil {
			f.Authors = []string{}
		}
		if f.LargeCommit == nil {
			f.LargeCommit = map[string]int{}
		}
		r.Result.Files[k] = f
	}
}
