// Package fuzztests holds Go fuzz harnesses for the front end and the lint
// pipeline. They guard against panics, hangs and span corruption on arbitrary
// input.
package fuzztests
