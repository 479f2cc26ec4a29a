package engine

// The demo knowledge base: a handful of prepared answers the keyword router
// picks from. Content is markdown-bearing and mostly Arabic, matching the
// product surface.

const fence = "```"

const solidArticle = `مبادئ SOLID في البرمجة:

**S - Single Responsibility Principle (مبدأ المسؤولية الواحدة)**
كل كلاس يجب أن يكون له سبب واحد للتغيير.

**O - Open/Closed Principle (مبدأ المفتوح/المغلق)**
الكلاسات يجب أن تكون مفتوحة للتوسيع، مغلقة للتعديل.

**L - Liskov Substitution Principle (مبدأ استبدال ليسكوف)**
الكائنات المشتقة يجب أن تكون قابلة للاستبدال مع كائناتها الأساسية.

**I - Interface Segregation Principle (مبدأ فصل الواجهات)**
لا تجبر العملاء على الاعتماد على واجهات لا يستخدمونها.

**D - Dependency Inversion Principle (مبدأ انعكاس التبعية)**
اعتمد على التجريدات، ليس على التفاصيل الملموسة.

` + fence + `python
# مثال على تطبيق SOLID في Python
from abc import ABC, abstractmethod

# Interface Segregation
class Readable(ABC):
    @abstractmethod
    def read(self):
        pass

class Writable(ABC):
    @abstractmethod
    def write(self, data):
        pass

# Single Responsibility
class FileReader(Readable):
    def __init__(self, filename):
        self.filename = filename

    def read(self):
        with open(self.filename, 'r') as file:
            return file.read()

class FileWriter(Writable):
    def __init__(self, filename):
        self.filename = filename

    def write(self, data):
        with open(self.filename, 'w') as file:
            file.write(data)
` + fence

const circuitBreakerArticle = `نمط Circuit Breaker لإدارة الأخطاء في الأنظمة الموزعة:

**المفهوم:**
يمنع النمط استمرار المحاولات الفاشلة لخدمة غير متاحة، مما يحسن الاستقرار والأداء.

**الحالات الثلاث:**
- **Closed**: الطلبات تمر بشكل طبيعي
- **Open**: الطلبات تفشل فوراً
- **Half-Open**: اختبار الخدمة للتعافي

` + fence + `python
import time
from enum import Enum
from typing import Callable, Any

class CircuitState(Enum):
    CLOSED = "closed"
    OPEN = "open"
    HALF_OPEN = "half_open"

class CircuitBreaker:
    def __init__(self, failure_threshold=5, recovery_timeout=60):
        self.failure_threshold = failure_threshold
        self.recovery_timeout = recovery_timeout
        self.failure_count = 0
        self.last_failure_time = None
        self.state = CircuitState.CLOSED

    def call(self, func: Callable, *args, **kwargs) -> Any:
        if self.state == CircuitState.OPEN:
            if self._should_attempt_reset():
                self.state = CircuitState.HALF_OPEN
            else:
                raise Exception("Circuit breaker is OPEN")

        try:
            result = func(*args, **kwargs)
            self._on_success()
            return result
        except Exception as e:
            self._on_failure()
            raise e

    def _should_attempt_reset(self) -> bool:
        return (
            self.last_failure_time and
            time.time() - self.last_failure_time >= self.recovery_timeout
        )

    def _on_success(self):
        self.failure_count = 0
        if self.state == CircuitState.HALF_OPEN:
            self.state = CircuitState.CLOSED

    def _on_failure(self):
        self.failure_count += 1
        self.last_failure_time = time.time()

        if self.failure_count >= self.failure_threshold:
            self.state = CircuitState.OPEN
` + fence

const databaseArticle = `أفضل الممارسات في تصميم قواعد البيانات:

**1. تصميم الجداول:**
- استخدم primary keys مناسبة
- تجنب null values عند الإمكان
- اختر أنواع البيانات المناسبة

**2. الفهرسة (Indexing):**
- أنشئ فهارس على الأعمدة المستخدمة في WHERE
- تجنب الفهرسة المفرطة
- استخدم فهارس مركبة للاستعلامات المعقدة

**3. الطبيعة النسبية (Normalization):**
- طبق 1NF, 2NF, 3NF حسب الحاجة
- تجنب الازدواجية
- وازن بين الطبيعة والأداء

**4. الأمان:**
- استخدم parameterized queries
- طبق مبدأ least privilege
- فعّل تشفير البيانات الحساسة

` + fence + `sql
-- مثال على تصميم جدول محسن
CREATE TABLE users (
    id BIGINT PRIMARY KEY AUTO_INCREMENT,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    full_name VARCHAR(100) NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    is_active BOOLEAN DEFAULT TRUE,

    INDEX idx_email (email),
    INDEX idx_created_at (created_at),
    INDEX idx_active_users (is_active, created_at)
);

-- استعلام محسن مع استخدام الفهارس
SELECT id, full_name, email
FROM users
WHERE is_active = TRUE
  AND created_at >= DATE_SUB(NOW(), INTERVAL 30 DAY)
ORDER BY created_at DESC
LIMIT 100;
` + fence

const greetingReply = `مرحباً! أنا محمد عبدالعزيز (Amrikyy)، مساعدك في البرمجة والتطوير.

أملك خبرة واسعة في:
- **Python** و تطبيقات الذكاء الاصطناعي
- **JavaScript** و تطوير الواجهات
- **تصميم الأنظمة** و الهندسة المعمارية
- **الأمن السيبراني** و أفضل الممارسات

كيف يمكنني مساعدتك اليوم؟ 🚀`

const biographyReply = `أنا **محمد عبدالعزيز** (Amrikyy) - مطور ومهندس تقني متخصص في:

**🎓 التعليم:**
- طالب هندسة الأمن السيبراني في جامعة Kennesaw State
- حاصل على شهادات من OpenAI وIntel وL'Oréal

**💼 الخبرة المهنية:**
- Innovation & Strategy Intern في Global Career Accelerator
- مطور مستقل متخصص في الذكاء الاصطناعي وWeb3
- متداول عملات مشفرة منذ 2020

**🛠️ المهارات التقنية:**
- Python (خبير)
- JavaScript/TypeScript (متقدم)
- تصميم UX/UI
- هندسة البرومبت
- تحليل البيانات

أساعدك في حل المشاكل البرمجية وتطوير المشاريع التقنية! 💻`

const fallbackReply = `شكراً لسؤالك! كمهندس تقني متخصص، يمكنني مساعدتك في:

**🔧 البرمجة والتطوير:**
- Python, JavaScript, وتقنيات أخرى
- تصميم الخوارزميات وحل المشاكل
- أفضل الممارسات في الكود النظيف

**🏗️ الهندسة المعمارية:**
- تصميم الأنظمة الموزعة
- أنماط التصميم (Design Patterns)
- قواعد البيانات والأداء

**🤖 الذكاء الاصطناعي:**
- تطوير تطبيقات الـ AI
- معالجة اللغات الطبيعية
- تحليل البيانات

هل يمكنك تحديد المجال الذي تحتاج المساعدة فيه؟ سأكون سعيداً لمساعدتك! 🚀`

const uploadAckFormat = `تم رفع الملف "%s" بنجاح! يمكنك الآن طرح أسئلة حول محتوى الملف.`
