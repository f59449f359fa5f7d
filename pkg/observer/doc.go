// Package observer provides an event-driven observer pattern for Graph
// and Node updates.
//
// # Overview
//
// Observers can track graph update lifecycle, individual node updates,
// and errors without coupling the core graph/pnode packages to any
// particular logging or metrics backend.
//
// # Basic Usage
//
//	mgr := observer.NewManager()
//	mgr.Register(observer.NewConsoleObserver())
//	mgr.Notify(ctx, observer.Event{
//		Type:    observer.EventGraphStart,
//		Status:  observer.StatusStarted,
//		GraphID: graphID.String(),
//	})
//
// # Event Timing
//
//	EventGraphStart
//	  → for each node in topological order:
//	      EventNodeStart
//	        → node.Update()
//	      EventNodeSuccess or EventNodeFailure
//	EventGraphEnd
//
// # Error Handling
//
// Manager.Notify recovers panics from individual observers so one
// misbehaving observer cannot affect the others or the caller.
package observer
