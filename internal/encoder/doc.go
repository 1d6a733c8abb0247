// Package encoder builds and runs the ffmpeg invocations that compress
// videos to H.264 and bake display-matrix rotation into pixel data.
package encoder
