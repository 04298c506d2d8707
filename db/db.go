package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection    *mongo.Collection
	ShopCollection    *mongo.Collection
	ProductCollection *mongo.Collection
	CartCollection    *mongo.Collection
	OrderCollection   *mongo.Collection
	CounterCollection *mongo.Collection
	Client            *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "vendoradb"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	UserCollection = Client.Database(dbName).Collection("users")
	ShopCollection = Client.Database(dbName).Collection("shops")
	ProductCollection = Client.Database(dbName).Collection("products")
	CartCollection = Client.Database(dbName).Collection("carts")
	OrderCollection = Client.Database(dbName).Collection("orders")
	CounterCollection = Client.Database(dbName).Collection("counters")
}
