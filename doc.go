// Package rangeset parses compact range expressions into index selections.
//
// A range expression is a comma-separated list of non-negative integers and
// inclusive dashed ranges, with spaces and tabs allowed around every token:
//
//	0,1,8, 10 - 20 , 15,17-21
//
// It lets client code toggle large indexed collections ("active" flags for N
// items) through short, human-editable strings.
//
// # Representations
//
// A parsed selection can be projected onto three interchangeable containers:
//
//   - *intvec.Vector: a sparse index list, kept sorted and deduplicated
//   - *boolvec.Vector: a dense membership mask indexed from 0
//   - *Selection: a compressed Roaring bitmap
//
// Each container has an Init operation (replace the contents), an Update
// operation (union with the current contents) and an Alloc constructor:
//
//	list, _ := rangeset.AllocList("1,3-5")      // [1 3 4 5]
//	_ = rangeset.UpdateList("0,4", list)        // [0 1 3 4 5]
//
//	mask, _ := rangeset.AllocMask("2-3")        // [false false true true]
//	_ = rangeset.UpdateMask("2-3", mask)        // idempotent
//
// # Errors
//
// Malformed expressions are rejected as a whole with a *ParseError carrying
// the kind of failure and the byte offset where it was detected. The target
// container is never modified when an error is returned.
//
//	_, err := rangeset.AllocList("5-4")
//	errors.Is(err, rangeset.ErrInvalidRange) // true
//
// # Persistence
//
// Selections can be encoded with the codec package and stored by name in any
// blob store (memory, local disk, MinIO, S3) through the catalog package.
package rangeset
