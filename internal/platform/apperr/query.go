// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr

import "github.com/taibuivan/cadenza/pkg/queryerr"

// # Query Taxonomy

// FromQuery converts a [*queryerr.Error] found in err's chain into a 400 [AppError].
//
// The machine-readable code is the error kind; the offending parameter is reported as a
// field detail. It returns nil when err carries no query error.
func FromQuery(err error) *AppError {
	qe := queryerr.As(err)
	if qe == nil {
		return nil
	}

	appError := BadRequest(string(qe.Kind), qe.Error())
	appError.Cause = err
	if qe.Field != "" {
		appError.Details = []FieldError{{Field: qe.Field, Message: qe.Error()}}
	}

	return appError
}
