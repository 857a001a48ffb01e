package encode

import (
	"bytes"

	"github.com/bmrb-io/go-nmrstar/ir"
)

func MustString(ent *ir.Entry, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(ent, buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}
