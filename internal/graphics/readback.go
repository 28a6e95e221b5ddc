package graphics

import (
	"image"

	"phong-viewer/internal/capture"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ReadFramebuffer copies the back buffer into a top-down RGBA image.
// Call it before SwapBuffers.
func ReadFramebuffer(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	// GL rows start at the bottom
	capture.FlipVertical(img)
	return img
}
