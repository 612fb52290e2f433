package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	strcode "github.com/itsatony/go-strcode"
)

// parseParams decodes a JSON array into parameters. Numbers become
// numeric parameters, strings text parameters and null an empty one.
// An object {"key": "STR_X"} is the id of another string of pack.
func parseParams(data string, pack strcode.KeyResolver) ([]strcode.Parameter, error) {
	if data == "" {
		return nil, nil
	}

	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()
	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	params := make([]strcode.Parameter, 0, len(raw))
	for i, v := range raw {
		p, err := toParam(v, pack)
		if err != nil {
			return nil, fmt.Errorf(FmtParamAtIndex, err.Error(), i)
		}
		params = append(params, p)
	}
	return params, nil
}

func toParam(v any, pack strcode.KeyResolver) (strcode.Parameter, error) {
	switch val := v.(type) {
	case nil:
		return strcode.Parameter{}, nil
	case string:
		return strcode.Str(val), nil
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return strcode.Int(n), nil
		}
		n, err := strconv.ParseUint(val.String(), 10, 64)
		if err != nil {
			return strcode.Parameter{}, errors.New(ErrMsgInvalidParam)
		}
		return strcode.Uint(n), nil
	case map[string]any:
		key, ok := val[ParamObjectKey].(string)
		if !ok || len(val) != 1 {
			return strcode.Parameter{}, errors.New(ErrMsgInvalidParam)
		}
		id, ok := pack.Lookup(key)
		if !ok {
			return strcode.Parameter{}, fmt.Errorf(FmtKeyDetail, ErrMsgUnknownStringKey, key)
		}
		return strcode.ID(id), nil
	}
	return strcode.Parameter{}, errors.New(ErrMsgInvalidParam)
}

// describeParam renders a decoded parameter for the decode command.
func describeParam(p strcode.Parameter) (kind, value string) {
	switch p.Kind {
	case strcode.ParamNum:
		if p.Num > math.MaxInt64 {
			return ParamKindNumber, strconv.FormatInt(int64(p.Num), 10)
		}
		return ParamKindNumber, strconv.FormatUint(p.Num, 10)
	case strcode.ParamString:
		return ParamKindText, p.Str
	}
	return ParamKindEmpty, ""
}
