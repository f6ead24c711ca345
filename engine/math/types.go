package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

/**
 * @brief An axis-aligned rectangle in screen space. Min is the top-left corner,
 * Max the bottom-right one (Y grows downwards).
 */
type Rect struct {
	/** @brief The top-left corner. */
	Min Vec2
	/** @brief The bottom-right corner. */
	Max Vec2
}
