// Package preview plays 30 second audio previews, one at a time per view.
//
// [Channel] is the view's single audio channel: starting a preview pauses whichever one was
// playing. [ExecPlayer] hands the preview URL to an external player command configured under
// [preview] in config.toml (mpv by default).
//
// Views create one [Channel] per mount and call [Channel.Stop] on unmount, so leaving a page
// silences it.
package preview
