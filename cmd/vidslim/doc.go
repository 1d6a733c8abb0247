// Command vidslim compresses video files to H.264 through a persistent
// work queue, driven entirely from the command line.
package main
