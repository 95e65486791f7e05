// Package thumbnails downloads catalog icons into the local image directory.
//
// Files are named after the last path segment of the icon URL and reused when
// already present. A failed download affects only its own title.
package thumbnails
