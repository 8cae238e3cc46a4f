// Package api handles incoming HTTP requests, request validation and response
// formatting. It is a thin adapter between external clients (the capture
// pipeline that submits samples and the presentation layer that reads
// assessments) and the assessment service.
package api
