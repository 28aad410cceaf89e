// Package carousel implements the state machine behind a slide carousel.
//
// # Overview
//
// A carousel shows one current panel out of an ordered panel set inside a fixed
// viewport. This package decides which panels are mounted, where the track sits,
// how a transition is sequenced, and how a drag or swipe resolves into a
// navigation decision. It does no drawing; an embedding renderer reads the
// exported state and track description each frame and feeds input back in.
//
// # Building blocks
//
// The pure pieces can be used on their own:
//
//	Wrap            ring indexing into a panel set
//	Unchanged       panel-set replacement detection by source identity
//	IndicesToRender the mounted window around the current (and outgoing) index
//	BuildTrack      placeholders plus infinite-mode clones, in track order
//	ComputeOffset   track translation aligning the effective current slide
//	ResolveRelease  drag release -> commit or snap back, with a duration
//
// # Orchestration
//
// Carousel owns the single mutable State and wires the pieces together:
//
//	input (click, drag, key, timer)
//	      ↓
//	Carousel.GoToSlide / PointerUp / Tick
//	      ↓
//	transition guard (one in flight) → offset measurement → track rebuild
//	      ↓
//	prefetch tracker (async loads, drained on Tick)
//
// Everything runs on the caller's goroutine. Timers are deadlines checked by
// Tick, and image loads run in the background but deliver their results
// through a channel that Tick drains, so State is never touched concurrently.
// Close cancels every timer and in-flight load; nothing mutates afterwards.
package carousel
