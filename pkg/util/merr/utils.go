// Licensed to the LF AI & Data foundation under one
// or more contributor license agreements. See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership. The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License. You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package merr

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/lk2023060901/rentit-go/pkg/log"
)

// Code 返回给定错误对应的错误码。
func Code(err error) int32 {
	if err == nil {
		return 0
	}

	cause := errors.Cause(err)
	switch specificErr := cause.(type) {
	case rentitError:
		return specificErr.code()

	default:
		if errors.Is(specificErr, context.Canceled) {
			return CanceledCode
		} else if errors.Is(specificErr, context.DeadlineExceeded) {
			return TimeoutCode
		} else {
			return errUnexpected.code()
		}
	}
}

func IsRetryableErr(err error) bool {
	if err, ok := errors.Cause(err).(rentitError); ok {
		return err.retriable
	}

	return false
}

func IsCanceledOrTimeout(err error) bool {
	return errors.IsAny(err, context.Canceled, context.DeadlineExceeded)
}

// HTTPStatus 将错误映射为协议层的 HTTP 状态码，供控制器等外部协作方使用。
// err 为空时返回 200。
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if IsCanceledOrTimeout(err) {
		return http.StatusServiceUnavailable
	}

	cause, ok := errors.Cause(err).(rentitError)
	if !ok {
		return http.StatusInternalServerError
	}
	switch {
	case cause.errCode == ErrServiceUnimplemented.errCode,
		cause.errCode == ErrOperationNotSupported.errCode:
		return http.StatusNotImplemented
	case cause.errCode == ErrIoKeyNotFound.errCode:
		return http.StatusNotFound
	case cause.errType == InputError:
		return http.StatusBadRequest
	case cause.retriable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func WrapErrAsInputError(err error) error {
	if merr, ok := err.(rentitError); ok {
		WithErrorType(InputError)(&merr)
		return merr
	}
	return err
}

func WrapErrAsInputErrorWhen(err error, targets ...rentitError) error {
	if merr, ok := err.(rentitError); ok {
		for _, target := range targets {
			if target.errCode == merr.errCode {
				log.Info("mark error as input error", zap.Error(err))
				WithErrorType(InputError)(&merr)
				return merr
			}
		}
	}
	return err
}

func GetErrorType(err error) ErrorType {
	if merr, ok := errors.Cause(err).(rentitError); ok {
		return merr.errType
	}

	return SystemError
}

// Service 相关错误封装。
func WrapErrServiceInternal(reason string, msg ...string) error {
	err := wrapFieldsWithDesc(ErrServiceInternal, reason)
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

func WrapErrIoFailed(key string, err error) error {
	if err == nil {
		return nil
	}
	return wrapFieldsWithDesc(ErrIoFailed, err.Error(), value("key", key))
}

// Parameter related
func WrapErrParameterInvalid[T any](expected, actual T, msg ...string) error {
	err := wrapFields(ErrParameterInvalid,
		value("expected", expected),
		value("actual", actual),
	)
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

func WrapErrParameterInvalidRange[T any](lower, upper, actual T, msg ...string) error {
	err := wrapFields(ErrParameterInvalid,
		bound("value", actual, lower, upper),
	)
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

func WrapErrParameterInvalidMsg(fmt string, args ...any) error {
	return errors.Wrapf(ErrParameterInvalid, fmt, args...)
}

func WrapErrParameterMissing[T any](param T, msg ...string) error {
	err := wrapFields(ErrParameterMissing,
		value("missing_param", param),
	)
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

// Serialization related
func WrapErrTypeNotSupported(typeName string, msg ...string) error {
	err := wrapFields(ErrTypeNotSupported, value("type", typeName))
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

func WrapErrEncodingFailed(typeName string, field string, cause error) error {
	desc := "unknown"
	if cause != nil {
		desc = cause.Error()
	}
	return wrapFieldsWithDesc(ErrEncodingFailed, desc, value("type", typeName), value("field", field))
}

func WrapErrRecursionTooDeep(typeName string, depth int, limit int) error {
	return wrapFields(ErrRecursionTooDeep,
		value("type", typeName),
		bound("depth", depth, 0, limit),
	)
}

func WrapErrRecordCycle(typeName string, path string) error {
	return wrapFieldsWithDesc(ErrRecursionTooDeep, "cycle detected", value("type", typeName), value("path", path))
}

func WrapErrRegistryConflict(typeName string, existing, incoming string) error {
	return wrapFields(ErrRegistryConflict,
		value("type", typeName),
		value("existing", existing),
		value("incoming", incoming),
	)
}

func WrapErrOutputVerifyFail(typeName string, size int) error {
	return wrapFields(ErrOutputVerifyFail, value("type", typeName), value("size", size))
}

func wrapFields(err rentitError, fields ...errorField) error {
	for i := range fields {
		err.msg += fmt.Sprintf("[%s]", fields[i].String())
	}
	err.detail = err.msg
	return err
}

func wrapFieldsWithDesc(err rentitError, desc string, fields ...errorField) error {
	for i := range fields {
		err.msg += fmt.Sprintf("[%s]", fields[i].String())
	}
	err.msg += ": " + desc
	err.detail = err.msg
	return err
}

type errorField interface {
	String() string
}

type valueField struct {
	name  string
	value any
}

func value(name string, value any) valueField {
	return valueField{
		name,
		value,
	}
}

func (f valueField) String() string {
	return fmt.Sprintf("%s=%v", f.name, f.value)
}

type boundField struct {
	name  string
	value any
	lower any
	upper any
}

func bound(name string, value, lower, upper any) boundField {
	return boundField{
		name,
		value,
		lower,
		upper,
	}
}

func (f boundField) String() string {
	return fmt.Sprintf("%v out of range %v <= %s <= %v", f.value, f.lower, f.name, f.upper)
}
