package game

// Director plays a session on the player's behalf. Frontends call Act from
// their own loop, so a director never runs concurrently with the session.
type Director interface {
	/**
	 * Bind the director to a freshly started session
	 */
	Init(*Session)

	/**
	 * Perform a single step of actions
	 */
	Act()

	/**
	 * Stop acting
	 */
	End()
}
