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
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

const (
	CanceledCode int32 = 10000
	TimeoutCode  int32 = 10001
)

type ErrorType int32

const (
	SystemError ErrorType = 0
	InputError  ErrorType = 1
)

var ErrorTypeName = map[ErrorType]string{
	SystemError: "system_error",
	InputError:  "input_error",
}

func (err ErrorType) String() string {
	return ErrorTypeName[err]
}

// Define leaf errors here,
// WARN: take care to add new error,
// check whether you can use the errors below before adding a new one.
// Name: Err + related prefix + error name
var (
	// Service related
	ErrServiceInternal      = newRentitError("service internal error", 5, false) // Never return this error out of RentIt
	ErrServiceUnimplemented = newRentitError("service unimplemented", 10, false)

	// IO related
	ErrIoKeyNotFound = newRentitError("key not found", 1000, false)
	ErrIoFailed      = newRentitError("IO failed", 1001, false)

	// Parameter related
	ErrParameterInvalid = newRentitError("invalid parameter", 1100, false, WithErrorType(InputError))
	ErrParameterMissing = newRentitError("missing parameter", 1101, false, WithErrorType(InputError))

	// Serialization related
	// 顶层（或开启嵌套检查时的嵌套）记录类型不在注册表中。
	ErrTypeNotSupported = newRentitError("type not supported", 2000, false, WithErrorType(InputError))
	// 转义或字段读取失败，对该次调用而言不可恢复。
	ErrEncodingFailed = newRentitError("encoding failed", 2001, false)
	// 嵌套层级超过上限或对象图中存在环。
	ErrRecursionTooDeep = newRentitError("recursion too deep", 2002, false, WithErrorType(InputError))
	ErrRegistryConflict = newRentitError("type registry conflict", 2003, false)
	ErrOutputVerifyFail = newRentitError("encoded output is not valid json", 2004, false)

	// Do NOT export this,
	// never allow programmer using this, keep only for converting unknown error to rentitError
	errUnexpected = newRentitError("unexpected error", (1<<16)-1, false)

	// General
	ErrOperationNotSupported = newRentitError("unsupported operation", 3000, false)
)

type errorOption func(*rentitError)

func WithDetail(detail string) errorOption {
	return func(err *rentitError) {
		err.detail = detail
	}
}

func WithErrorType(etype ErrorType) errorOption {
	return func(err *rentitError) {
		err.errType = etype
	}
}

type rentitError struct {
	msg       string
	detail    string
	retriable bool
	errCode   int32
	errType   ErrorType
}

func newRentitError(msg string, code int32, retriable bool, options ...errorOption) rentitError {
	err := rentitError{
		msg:       msg,
		detail:    msg,
		retriable: retriable,
		errCode:   code,
	}

	for _, option := range options {
		option(&err)
	}
	return err
}

func (e rentitError) code() int32 {
	return e.errCode
}

func (e rentitError) Error() string {
	return e.msg
}

func (e rentitError) Detail() string {
	return e.detail
}

func (e rentitError) Is(err error) bool {
	cause := errors.Cause(err)
	if cause, ok := cause.(rentitError); ok {
		return e.errCode == cause.errCode
	}
	return false
}

type multiErrors struct {
	errs []error
}

func (e multiErrors) Unwrap() error {
	if len(e.errs) <= 1 {
		return nil
	}
	// To make merr work for multi errors,
	// we need cause of multi errors, which defined as the last error
	if len(e.errs) == 2 {
		return e.errs[1]
	}

	return multiErrors{
		errs: e.errs[1:],
	}
}

func (e multiErrors) Error() string {
	final := e.errs[0]
	for i := 1; i < len(e.errs); i++ {
		final = errors.Wrap(e.errs[i], final.Error())
	}
	return final.Error()
}

func (e multiErrors) Is(err error) bool {
	for _, item := range e.errs {
		if errors.Is(item, err) {
			return true
		}
	}
	return false
}

func Combine(errs ...error) error {
	errs = lo.Filter(errs, func(err error, _ int) bool { return err != nil })
	if len(errs) == 0 {
		return nil
	}
	return multiErrors{
		errs,
	}
}
