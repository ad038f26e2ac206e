// Package scene defines the design scene types for Chisel.
// A scene is a flat snapshot of movable parts and the cabinets that
// group them, together with the user's snapping preferences. Resolver
// calls treat the scene as read-only; the app layer owns mutation.
package scene
