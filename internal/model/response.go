package model

import (
	"errors"
	"fmt"
	"reflect"
)

// Response is the outcome of one exchange: either Err is set, or Data (and
// possibly Version) is.
type Response struct {
	Err     error
	Data    []string
	Version *Version
}

func Failure(err error) *Response {
	if err == nil {
		err = errors.New("unknown failure")
	}
	return &Response{Err: err}
}

func Success(lines []string, ver *Version) *Response {
	if lines == nil {
		lines = []string{}
	}
	return &Response{Data: lines, Version: ver}
}

func (r *Response) Failed() bool { return r.Err != nil }

// Equal compares outcomes. data compares element-wise and nil differs from
// empty. versions compare by value. errors are equal if both are a
// [*StatusError] with the same code and message, or if they are the same
// comparable value. an error whose dynamic type is not comparable, e.g. a
// slice type, makes two distinct Responses unequal even when both hold the
// same error value.
func (r *Response) Equal(o *Response) bool {
	if r == o {
		return true
	}
	if r == nil || o == nil {
		return false
	}
	if !sameError(r.Err, o.Err) {
		return false
	}
	if (r.Data == nil) != (o.Data == nil) || len(r.Data) != len(o.Data) {
		return false
	}
	for i := range r.Data {
		if r.Data[i] != o.Data[i] {
			return false
		}
	}
	if r.Version == nil || o.Version == nil {
		return r.Version == o.Version
	}
	return *r.Version == *o.Version
}

// status errors compare by content. other errors compare with ==, except
// those whose dynamic type is not comparable, which would panic.
func sameError(a, b error) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	sa, okA := a.(*StatusError)
	sb, okB := b.(*StatusError)
	if okA && okB {
		return sa.Code == sb.Code && sa.Message == sb.Message
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func (r *Response) String() string {
	ver := "<nil>"
	if r.Version != nil {
		ver = r.Version.String()
	}
	return fmt.Sprintf("Response{err=%v,data=%q,ver=%s}", r.Err, r.Data, ver)
}
