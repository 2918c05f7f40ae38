// Package vision extracts object detections from cooking videos.
//
// Videos are sampled at a fixed interval; each sampled frame is decoded by a
// FrameExtractor and scored by a Detector, both supplied by the caller. The
// branch filters detections by confidence, drops frames with nothing left,
// and returns the surviving frames in playback order. A single frame failing
// to extract or detect is skipped without failing the video.
package vision
