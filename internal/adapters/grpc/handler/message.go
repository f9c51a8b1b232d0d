package handler

import (
	"fmt"
	"math"
	"time"

	"github.com/ogurasousui/dwrecords/internal/core/employment"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const timestampLayout = time.RFC3339

// request は structpb.Struct のリクエストを型付きで読み出します。
type request struct {
	fields map[string]*structpb.Value
}

func newRequest(req *structpb.Struct) (request, error) {
	if req == nil {
		return request{}, status.Error(codes.InvalidArgument, "request is required")
	}
	return request{fields: req.GetFields()}, nil
}

func (r request) has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

func (r request) isNull(key string) bool {
	v, ok := r.fields[key]
	if !ok {
		return false
	}
	_, null := v.GetKind().(*structpb.Value_NullValue)
	return null
}

func (r request) str(key string) (string, error) {
	v, ok := r.fields[key]
	if !ok || r.isNull(key) {
		return "", nil
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", invalidField(key, "must be a string")
	}
	return s.StringValue, nil
}

// optStr は key が存在する場合のみ値を返します。null は空文字として扱います。
func (r request) optStr(key string) (*string, error) {
	if !r.has(key) {
		return nil, nil
	}
	s, err := r.str(key)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r request) integer(key string) (int, error) {
	v, ok := r.fields[key]
	if !ok || r.isNull(key) {
		return 0, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, invalidField(key, "must be a number")
	}
	if n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
		return 0, invalidField(key, "must be an integer")
	}
	return int(n.NumberValue), nil
}

// date は YYYY-MM-DD 形式の日付を読み出します。
// set は key が存在したかどうかで、null または空文字の場合は値が nil になります。
func (r request) date(key string) (value *time.Time, set bool, err error) {
	if !r.has(key) {
		return nil, false, nil
	}
	raw, err := r.str(key)
	if err != nil {
		return nil, true, err
	}
	parsed, err := employment.ParseDate(raw)
	if err != nil {
		return nil, true, invalidField(key, err.Error())
	}
	return parsed, true, nil
}

func (r request) status(key string) (*employment.Status, error) {
	raw, err := r.str(key)
	if err != nil {
		return nil, err
	}
	parsed, err := employment.ParseStatus(raw)
	if err != nil {
		return nil, toStatusError(err)
	}
	if parsed == "" {
		return nil, nil
	}
	return &parsed, nil
}

func invalidField(key, reason string) error {
	return status.Error(codes.InvalidArgument, fmt.Sprintf("%s: %s", key, reason))
}

func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(employment.DateLayout)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func optionalString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func newResponse(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return out, nil
}
