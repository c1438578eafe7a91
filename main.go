package main

import (
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"annotation-playground/annotations"
	"annotation-playground/datastructures"
	"annotation-playground/mockimage"

	"github.com/getsentry/raven-go"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func corsHeaders(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With, X-PINGOTHER, X-File-Name, Cache-Control")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")
	c.Writer.Header().Set("Access-Control-Expose-Headers", "Image-ID")
}

func setupRouter(generator *mockimage.Generator) *gin.Engine {
	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		corsHeaders(c)
		c.JSON(http.StatusOK, gin.H{"message": "Hello, World!!!"})
	})

	router.OPTIONS("/get-mock-image", func(c *gin.Context) {
		corsHeaders(c)
		c.JSON(http.StatusOK, struct{}{})
	})

	router.GET("/get-mock-image", func(c *gin.Context) {
		corsHeaders(c)

		imgBytes, imageId, err := generator.Generate()
		if err != nil {
			log.Debug("[Mock Image] Couldn't generate image: ", err.Error())
			raven.CaptureError(err, nil)
			c.JSON(500, gin.H{"error": "Couldn't generate image - please try again later"})
			return
		}

		c.Writer.Header().Set("Image-ID", imageId)
		c.Data(http.StatusOK, "image/png", imgBytes)
	})

	router.OPTIONS("/submit-bbox", func(c *gin.Context) {
		corsHeaders(c)
		c.JSON(http.StatusOK, struct{}{})
	})

	router.POST("/submit-bbox", func(c *gin.Context) {
		corsHeaders(c)

		var request datastructures.BoundingBoxRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": "Couldn't process request - invalid request body"})
			return
		}

		if err := annotations.Validate(request.BBoxes); err != nil {
			log.Debug("[Submit BBox] Rejected annotations for image ", request.ImageId, ": ", err.Error())
			c.JSON(400, gin.H{"detail": "Invalid bounding box coordinates."})
			return
		}

		c.JSON(http.StatusOK, datastructures.BoundingBoxResponse{
			Message: "Bounding boxes received successfully",
			ImageId: request.ImageId,
			BBoxes:  request.BBoxes,
		})
	})

	return router
}

func main() {
	log.SetLevel(log.DebugLevel)

	releaseMode := flag.Bool("release", false, "Run in release mode")
	listenPort := flag.Int("listen-port", 8083, "Listen port")
	fontPath := flag.String("font-path", mockimage.DefaultConfig().FontPath, "Location of the caption font")
	useSentry := flag.Bool("use-sentry", false, "Use sentry for error logging")

	flag.Parse()
	if *releaseMode {
		fmt.Printf("[Main] Starting gin in release mode!\n")
		gin.SetMode(gin.ReleaseMode)
	}

	if *useSentry {
		log.Debug("[Main] Setting sentry DSN")
		raven.SetDSN(os.Getenv("SENTRY_DSN"))
		raven.SetEnvironment("playground")
	}

	cfg := mockimage.DefaultConfig()
	cfg.FontPath = *fontPath

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	generator := mockimage.New(cfg, rnd)

	router := setupRouter(generator)
	router.Run(fmt.Sprintf(":%d", *listenPort))
}
