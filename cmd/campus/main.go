// The campus command is the playable client. It signs the player in, connects
// to a hub when one is given (offline otherwise), and runs the game window.
package main

import (
	"context"
	"flag"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"birdieu.dev/campus/game"
	"birdieu.dev/campus/learn"
	"birdieu.dev/campus/logging"
	"birdieu.dev/campus/presence"
	"birdieu.dev/campus/profile"
	"birdieu.dev/campus/store"
	"birdieu.dev/campus/store/memory"
	"birdieu.dev/campus/store/ws"
	"birdieu.dev/campus/world"
)

// avatarColors is the pool a new student's color is drawn from.
var avatarColors = []string{
	"#ef4444", "#f97316", "#eab308", "#22c55e",
	"#06b6d4", "#3b82f6", "#8b5cf6", "#ec4899",
}

func main() {
	var (
		name      = flag.String("name", "Student", "display name")
		password  = flag.String("password", "", "account password (empty joins as a guest)")
		hubURL    = flag.String("hub", "", "hub websocket URL, e.g. ws://localhost:8080/ws (empty plays offline)")
		genAPI    = flag.String("genapi", "", "content generation service base URL (empty uses the built-in bank)")
		startRoom = flag.String("room", world.RoomEntrance, "starting room id")
		logFile   = flag.String("log", "", "log file path (empty logs to stderr)")
		debug     = flag.Bool("debug", false, "enable debug logging")
		scale     = flag.Int("scale", 2, "window scale factor")
	)
	flag.Parse()

	log := logging.New(logging.Options{FilePath: *logFile, Debug: *debug})
	defer log.Sync()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ctx := context.Background()

	profiles := profile.NewMemoryStore(rand.NewSource(rng.Int63()))
	_, self, err := profiles.Signup(ctx, *name, *password, avatarColors[rng.Intn(len(avatarColors))])
	if err != nil {
		log.Fatal("signup failed", zap.String("reason", profile.NormalizeAuthError(err)))
	}
	log.Info("signed in",
		zap.String("name", self.Name),
		zap.String("major", self.Major),
		zap.Strings("courses", self.EnrolledCourses))

	var st store.RoomStore
	if *hubURL != "" {
		st, err = ws.Dial(ctx, *hubURL, log)
		if err != nil {
			log.Fatal("hub dial failed", zap.String("hub", *hubURL), zap.Error(err))
		}
	} else {
		st = memory.New()
	}
	defer st.Close()

	var gen learn.Generator
	if *genAPI != "" {
		gen = learn.NewHTTPGenerator(*genAPI, nil)
	}
	content := learn.NewService(gen, rand.NewSource(rng.Int63()), log)

	syncer := presence.New(st, presence.Self{
		ID:      self.ID,
		Name:    self.Name,
		Color:   self.Color,
		Hat:     self.Hat,
		Glasses: self.Glasses,
	}, log)
	defer syncer.Disconnect()

	g := game.New(game.Deps{
		Sync:     syncer,
		Profiles: profiles,
		Learn:    content,
		Log:      log,
	}, *self, *startRoom)

	ebiten.SetWindowSize(game.ViewWidth**scale, game.ViewHeight**scale)
	ebiten.SetWindowTitle("Virtual Campus")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal("game exited", zap.Error(err))
	}
}
