// Package signpost carries Timelane records across a process boundary.
//
// A StreamLogger is a timelane.Logger that writes every record as a CBOR
// frame to an io.Writer, typically a file or pipe read by a visualization
// tool. A Reader iterates the frames of such a stream.
//
//	logger, err := signpost.NewFileStreamLogger("/tmp/app.tlane")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//	timelane.SetDefaultLogger(logger)
//
// Every stream is stamped with a random session ID so frames of several
// processes written to the same sink can be told apart.
//
// # Frame Format
//
// Frames are CBOR maps with integer keys, encoded canonically. Timestamps
// use RFC 3339 with nanosecond precision.
package signpost
