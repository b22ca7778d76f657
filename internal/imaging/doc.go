// Package imaging prepares captures for OCR and renders annotation overlays.
//
// Coordinates follow the image package: (0,0) is the top-left corner, X grows
// rightward and Y downward, and rectangles are half-open. Boxes recognized on
// a preprocessed capture are mapped back to the coordinates of the original
// image before they leave this package, so callers never see the scaled or
// cropped space.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Preprocess and Overlay never mutate
// their input image.
package imaging
