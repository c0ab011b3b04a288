// Copyright (c) 2021-2024 SigScalr, Inc.
//
// This file is part of SigLens Observability Solution
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

const MAX_SIMILAR_ERRORS_TO_LOG = 5 // Maximum number of similar errors to store

const MISMATCH_ERR = "MISMATCH_ERR"
const FIXTURE_ERR = "FIXTURE_ERR"

// BatchErrorData holds error information for a specific error key
type BatchErrorData struct {
	lock    sync.Mutex
	errors  []error
	counter uint32
}

// BatchError collects errors from many comparisons, keyed by fixture or
// check name, so they can be logged together once a run finishes.
type BatchError struct {
	beMap *sync.Map
}

// ErrorWithCode combines an error with a standardized error code
type ErrorWithCode struct {
	code string
	err  error
}

func NewBatchError() *BatchError {
	return &BatchError{
		beMap: &sync.Map{},
	}
}

// AddError adds an error to the batch. Safe for concurrent use.
func (be *BatchError) AddError(errKey string, err error) {
	if err == nil {
		return
	}

	if errorWithCode, ok := err.(*ErrorWithCode); ok {
		errKey = fmt.Sprintf("%s:%s", errKey, errorWithCode.code)
	}

	value, _ := be.beMap.LoadOrStore(errKey, &BatchErrorData{
		errors: make([]error, 0, MAX_SIMILAR_ERRORS_TO_LOG),
	})
	data := value.(*BatchErrorData)

	atomic.AddUint32(&data.counter, 1)

	data.lock.Lock()
	if len(data.errors) < MAX_SIMILAR_ERRORS_TO_LOG {
		data.errors = append(data.errors, err)
	}
	data.lock.Unlock()
}

func (be *BatchError) LogAllErrors() {
	for _, key := range be.Keys() {
		value, _ := be.beMap.Load(key)
		data := value.(*BatchErrorData)
		log.WithFields(log.Fields{
			"count":   atomic.LoadUint32(&data.counter),
			"samples": data.errors,
		}).Errorf("ErrorKey=%v", key)
	}
}

// Keys returns the error keys in sorted order.
func (be *BatchError) Keys() []string {
	keys := make([]string, 0)
	be.beMap.Range(func(key, _ interface{}) bool {
		keys = append(keys, key.(string))
		return true
	})
	sort.Strings(keys)

	return keys
}

// Count returns the total number of errors added, including the ones not
// kept as samples.
func (be *BatchError) Count() int {
	total := 0
	be.beMap.Range(func(_, value interface{}) bool {
		total += int(atomic.LoadUint32(&value.(*BatchErrorData).counter))
		return true
	})

	return total
}

func (be *BatchError) HasErrors() bool {
	hasErrors := false
	be.beMap.Range(func(_, _ interface{}) bool {
		hasErrors = true
		return false // Stop iteration once we find any entry
	})
	return hasErrors
}

// Err joins one sample per key into a single error, or returns nil when the
// batch is empty.
func (be *BatchError) Err() error {
	keys := be.Keys()
	if len(keys) == 0 {
		return nil
	}

	errs := make([]error, 0, len(keys))
	for _, key := range keys {
		value, _ := be.beMap.Load(key)
		data := value.(*BatchErrorData)
		data.lock.Lock()
		if len(data.errors) > 0 {
			errs = append(errs, data.errors[0])
		}
		data.lock.Unlock()
	}

	return errors.Join(errs...)
}

// NewErrorWithCode creates a new error with a code
func NewErrorWithCode(code string, err error) *ErrorWithCode {
	return &ErrorWithCode{
		code: code,
		err:  err,
	}
}

func (ewc *ErrorWithCode) Error() string {
	return fmt.Sprintf("ErrorCode=%s; err=%v", ewc.code, ewc.err)
}

func (ewc *ErrorWithCode) Unwrap() error {
	return ewc.err
}

func (ewc *ErrorWithCode) Code() string {
	return ewc.code
}

func (ewc *ErrorWithCode) String() string {
	return ewc.Error()
}

// WrapErrorf wraps the message with the error
// if err is of type ErrorWithCode, the code is preserved
func WrapErrorf(err error, message string, options ...any) error {
	if err == nil {
		return nil
	}

	if ewc, ok := err.(*ErrorWithCode); ok {
		return NewErrorWithCode(ewc.code, fmt.Errorf(message, options...))
	}

	return fmt.Errorf(message, options...)
}

func TeeErrorf(format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	log.Error(err.Error())

	return err
}
