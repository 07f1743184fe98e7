// Package tgerr implements helpers for typed RPC errors.
package tgerr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"github.com/gramkit/gram/mt"
)

// Error represents RPC error returned to request.
type Error struct {
	// Code is error code, like 420.
	Code int
	// Message is the full error message, like FLOOD_WAIT_5.
	Message string
	// Type is the error type with the numeric part stripped, like
	// FLOOD_WAIT.
	Type string
	// Argument is the numeric part of the message, like 5.
	Argument int
}

// New creates new *Error from code and message, extracting type and
// argument.
func New(code int, message string) *Error {
	err := &Error{
		Code:    code,
		Message: message,
	}
	err.extractArgument()
	return err
}

// FromRPCError creates new *Error from mt.RPCError.
func FromRPCError(rpcErr mt.RPCError) *Error {
	return New(rpcErr.ErrorCode, rpcErr.ErrorMessage)
}

// extractArgument splits the trailing or embedded numeric argument
// from the message, e.g. FLOOD_WAIT_5 or 2FA_CONFIRM_WAIT_3.
func (e *Error) extractArgument() {
	if e.Message == "" {
		return
	}

	// Leading and trailing digit runs, joined back without them.
	parts := strings.Split(e.Message, "_")
	var (
		kept     []string
		argument int
		found    bool
	)
	for _, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || found {
			kept = append(kept, part)
			continue
		}
		argument = v
		found = true
	}
	if !found {
		e.Type = e.Message
		return
	}
	e.Type = strings.Join(kept, "_")
	e.Argument = argument
}

// IsType reports whether error has given type.
func (e *Error) IsType(typ string) bool {
	return e.Type == typ
}

// IsOneOf reports whether error type is in the list.
func (e *Error) IsOneOf(types ...string) bool {
	for _, typ := range types {
		if e.IsType(typ) {
			return true
		}
	}
	return false
}

// IsCode reports whether error code is in the list.
func (e *Error) IsCode(codes ...int) bool {
	for _, code := range codes {
		if e.Code == code {
			return true
		}
	}
	return false
}

// Error implements error.
func (e *Error) Error() string {
	if e.Argument != 0 {
		return fmt.Sprintf("rpc error code %d: %s (%d)", e.Code, e.Type, e.Argument)
	}
	return fmt.Sprintf("rpc error code %d: %s", e.Code, e.Message)
}

// As finds the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr, true
	}
	return nil, false
}

// Is reports whether err is an *Error with one of given types.
func Is(err error, types ...string) bool {
	rpcErr, ok := As(err)
	if !ok {
		return false
	}
	return rpcErr.IsOneOf(types...)
}

// IsCode reports whether err is an *Error with one of given codes.
func IsCode(err error, codes ...int) bool {
	rpcErr, ok := As(err)
	if !ok {
		return false
	}
	return rpcErr.IsCode(codes...)
}
