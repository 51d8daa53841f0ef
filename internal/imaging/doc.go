// Package imaging is the image-file boundary for the steganography codec.
//
// It decodes image files into a flattened 8-bit RGB sample stream (Carrier),
// writes such streams back losslessly, validates candidate carrier files, and
// provides analysis helpers for inspecting what an embedding did to an image.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y downward. Images with a non-zero bounds origin
// are re-based to (0,0) when converted to a Carrier.
//
// # Sample Stream
//
// A Carrier stores pixels in row-major order with R, G, B per pixel, so the
// sample for channel ch of pixel (x, y) is at index (y*Width + x)*3 + ch.
// Conversion to a Carrier drops alpha without compositing and expands
// palette and gray images; 16-bit channels keep their high byte.
//
// # Lossless Formats
//
// Only PNG and BMP are written. Any lossy re-encoding would destroy bit 0 of
// the samples, so SaveCarrier refuses other extensions.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Other functions are
// stateless and never modify the carriers passed to them.
//
// # Error Handling
//
// File failures are returned as *ImageError, which matches ErrUnreadableImage
// (open or decode) or ErrWriteFailed (encode or write) under errors.Is while
// still exposing the underlying cause.
package imaging
