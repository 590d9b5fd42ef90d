package router

import "log/slog"

// Router embeds a fixed set of nets into a Fabric by running Setup
// followed by the negotiated-congestion outer loop. A Router is built
// once per routing invocation; it owns the ArcIndex, ScoreBook and work
// queue for that invocation's lifetime and is not reusable afterward.
type Router struct {
	fabric      Fabric
	cfg         RouterConfig
	nets        map[NetID]*Net
	orderedNets []*Net

	index  *ArcIndex
	scores *ScoreBook
	queue  *ArcWorkQueue

	log     *slog.Logger
	metrics *Metrics
	runID   string

	arcsWithRipup    int
	arcsWithoutRipup int
	ripupFlag        bool
}

// Option configures a Router at construction time.
type Option func(*Router)

// WithLogger overrides the default slog.Default() logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Router) { r.log = log }
}

// WithMetrics attaches a Prometheus-backed Metrics. Omitting this
// leaves metrics collection as a no-op.
func WithMetrics(m *Metrics) Option {
	return func(r *Router) { r.metrics = m }
}

// NewRouter prepares a Router over nets against fabric. Nets are kept in
// the order given, and Setup walks them in that order (see setup.go).
func NewRouter(fabric Fabric, nets []*Net, cfg RouterConfig, opts ...Option) *Router {
	r := &Router{
		fabric:      fabric,
		cfg:         cfg,
		nets:        make(map[NetID]*Net, len(nets)),
		orderedNets: nets,
		index:       NewArcIndex(),
		scores:      NewScoreBook(),
		queue:       NewArcWorkQueue(),
		log:         slog.Default(),
		runID:       newRunID(),
	}
	for _, n := range nets {
		r.nets[n.ID] = n
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RouteAll runs Setup, drains the work queue, and finally invokes the
// post-route validator. It takes the Fabric's lock for the duration and
// always releases it before returning, success or failure. A panic
// raised by a collaborator (the Fabric, or a logging sink) is caught and
// turned into an ErrHostSignalled error rather than propagating past the
// public API.
func (r *Router) RouteAll() (rr *RunReport, err error) {
	r.fabric.Lock()
	defer r.fabric.Unlock()
	defer func() {
		if rec := recover(); rec != nil {
			rr = &RunReport{RunID: r.runID}
			err = hostErrorf("recovered from panic: %v", rec)
		}
	}()

	r.log.Info("setting up routing queue", slog.String("run_id", r.runID))
	if err := r.setup(); err != nil {
		return nil, err
	}
	if err := r.checkIntegrity(); err != nil {
		return nil, err
	}

	r.log.Info("routing arcs", slog.Int("count", r.queue.Len()))
	reporter := newProgressReporter(r.log)

	iter := 0
	for r.queue.Len() > 0 {
		iter++

		if r.cfg.ReportEvery > 0 && iter%r.cfg.ReportEvery == 0 {
			reporter.emit(iter, r.arcsWithRipup, r.arcsWithoutRipup, r.queue.Len())
			r.metrics.observeQueueDepth(r.queue.Len())
			r.metrics.observeScores(r.scores.MaxWireScore(), r.scores.MaxNetScore())
		}
		if r.cfg.IntegrityCheckEvery > 0 && iter%r.cfg.IntegrityCheckEvery == 0 {
			if err := r.checkIntegrity(); err != nil {
				return nil, err
			}
		}

		arc, ok := r.queue.Pop()
		if !ok {
			break
		}

		if r.cfg.Verbose {
			r.log.Debug("routing arc", slog.String("arc", arc.String()))
		}

		routed, err := r.routeArc(arc, true)
		if err != nil {
			return nil, err
		}
		if !routed {
			r.log.Warn("failed to find a route for arc", slog.String("arc", arc.String()))
			return &RunReport{
				RunID:            r.runID,
				Iterations:       iter,
				ArcsWithRipup:    r.arcsWithRipup,
				ArcsWithoutRipup: r.arcsWithoutRipup,
				Failed:           true,
				FailedArc:        arc,
			}, routingErrorf("no route found for %s", arc)
		}
	}

	reporter.emit(iter, r.arcsWithRipup, r.arcsWithoutRipup, r.queue.Len())
	r.metrics.observeQueueDepth(r.queue.Len())
	r.metrics.observeScores(r.scores.MaxWireScore(), r.scores.MaxNetScore())
	r.log.Info("routing complete")

	report, err := Validate(r.fabric, r.orderedNets)
	checksum := r.fabric.Checksum()

	rr = &RunReport{
		RunID:            r.runID,
		Iterations:       iter,
		ArcsWithRipup:    r.arcsWithRipup,
		ArcsWithoutRipup: r.arcsWithoutRipup,
		Checksum:         checksum,
	}
	if err != nil {
		return rr, err
	}
	rr.ValidationPassed = report.Valid
	if !report.Valid {
		return rr, invariantErrorf("post-route validation failed: %v", report.Failures)
	}

	r.log.Info("checksum", slog.Uint64("checksum", checksum))
	return rr, nil
}

// checkIntegrity cross-checks the ArcIndex against the net list and the
// Fabric's recorded bindings. A failure here is treated as a bug: the
// caller does not attempt recovery.
func (r *Router) checkIntegrity() error {
	validArcs := make(map[Arc]struct{})

	for _, net := range r.orderedNets {
		if net.Skip {
			continue
		}

		bound := r.fabric.NetWires(net.ID)
		coveredWires := make(map[Wire]struct{})

		for userIdx := range net.Users {
			arc := Arc{Net: net.ID, User: userIdx}
			validArcs[arc] = struct{}{}

			for _, w := range r.index.WiresOf(arc) {
				coveredWires[w] = struct{}{}

				attached := false
				for _, a := range r.index.ArcsOf(w) {
					if a == arc {
						attached = true
						break
					}
				}
				if !attached {
					return invariantErrorf("wire %d claims arc %s but arcsOf(wire) disagrees", w, arc)
				}
				if _, ok := bound[w]; !ok {
					return invariantErrorf("wire %d attached to arc %s is not in net %d's fabric bindings", w, arc, net.ID)
				}
			}
		}

		for w := range bound {
			if _, ok := coveredWires[w]; !ok {
				return invariantErrorf("wire %d is bound to net %d but no arc covers it", w, net.ID)
			}
		}
	}

	for _, w := range r.index.Wires() {
		for _, a := range r.index.ArcsOf(w) {
			if _, ok := validArcs[a]; !ok {
				return invariantErrorf("wire %d references arc %s which is not a valid arc", w, a)
			}
		}
	}
	for _, a := range r.index.Arcs() {
		if _, ok := validArcs[a]; !ok {
			return invariantErrorf("arc %s present in index but not a valid arc", a)
		}
	}

	return nil
}
