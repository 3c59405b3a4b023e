package script

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/textspan/internal/engine/buffer"
	"github.com/dshills/textspan/internal/engine/textprop"
)

// Errors returned by JSON script processing.
var (
	ErrScriptInvalid = errors.New("invalid script")
	ErrUnknownOp     = errors.New("unknown script operation")
)

// Apply runs a JSON edit script against buf. The script is an object with
// an "ops" array; each entry names an "op" plus its arguments:
//
//	{"op": "insert", "pos": 1, "text": "hi"}
//	{"op": "delete", "start": 1, "end": 3}
//	{"op": "set",    "start": 1, "end": 3, "props": {"face": "bold"}}
//	{"op": "add",    "start": 1, "end": 3, "props": {"note": "x"}}
//	{"op": "remove", "start": 1, "end": 3, "keys": ["face"]}
//	{"op": "coalesce"}
//
// Ops run in order; the first failure stops the script.
func Apply(buf *buffer.Buffer, data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("not valid JSON: %w", ErrScriptInvalid)
	}
	ops := gjson.GetBytes(data, "ops")
	if !ops.IsArray() {
		return fmt.Errorf("missing ops array: %w", ErrScriptInvalid)
	}

	var err error
	ops.ForEach(func(_, op gjson.Result) bool {
		err = applyOp(buf, op)
		return err == nil
	})
	return err
}

func applyOp(buf *buffer.Buffer, op gjson.Result) error {
	name := op.Get("op").String()
	r := buffer.NewRange(op.Get("start").Int(), op.Get("end").Int())

	switch name {
	case "insert":
		return buf.Insert(op.Get("pos").Int(), op.Get("text").String())
	case "delete":
		return buf.Delete(r)
	case "set":
		return buf.SetProperties(r, propsFromJSON(op.Get("props")))
	case "add":
		return buf.AddProperties(r, propsFromJSON(op.Get("props")))
	case "remove":
		var keys []string
		for _, k := range op.Get("keys").Array() {
			keys = append(keys, k.String())
		}
		return buf.RemoveProperties(r, keys...)
	case "coalesce":
		return buf.Coalesce()
	default:
		return fmt.Errorf("%q: %w", name, ErrUnknownOp)
	}
}

// Dump renders buf as pretty-printed JSON: the text plus its property runs.
func Dump(buf *buffer.Buffer) ([]byte, error) {
	out := []byte(`{}`)

	out, err := sjson.SetBytes(out, "text", buf.Text())
	if err != nil {
		return nil, err
	}
	if out, err = sjson.SetRawBytes(out, "spans", []byte(`[]`)); err != nil {
		return nil, err
	}

	for i, s := range buf.Spans() {
		base := fmt.Sprintf("spans.%d", i)
		if out, err = sjson.SetBytes(out, base+".start", s.Start); err != nil {
			return nil, err
		}
		if out, err = sjson.SetBytes(out, base+".end", s.End); err != nil {
			return nil, err
		}
		if !s.Props.IsEmpty() {
			if out, err = sjson.SetBytes(out, base+".props", map[string]any(s.Props)); err != nil {
				return nil, err
			}
		}
	}

	return pretty.Pretty(out), nil
}

// propsFromJSON converts a JSON object into a property record. A missing
// or empty object yields an empty record, which Set treats as clearing.
func propsFromJSON(res gjson.Result) textprop.Props {
	p := textprop.Props{}
	for k, v := range res.Map() {
		p[k] = v.Value()
	}
	return p
}
